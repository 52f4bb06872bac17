package llm

import "context"

// MockClient allows tests without calling a real LLM.
type MockClient struct {
	Response string
	Err      error

	LastSystem string
	LastUser   string
}

func (m *MockClient) Generate(_ context.Context, system, user string) (string, error) {
	m.LastSystem = system
	m.LastUser = user
	return m.Response, m.Err
}
