package mocks

//go:generate mockgen -source=../reminder/notifier.go -destination=./notifier_mocks.go -package=mocks
//go:generate mockgen -source=../reminder/service.go -destination=./service_mocks.go -package=mocks

// Generated gomock doubles live next to the hand-written in-memory fakes in this
// package so that tests of several packages can share them.
