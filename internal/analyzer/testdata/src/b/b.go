package b

type Manager struct{}

type SessionHelper interface{ Close() error }
