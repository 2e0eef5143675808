package transport

import (
	"sync"

	"github.com/jordan-wright/email"
)

// MockMailTransport records mails instead of delivering them.
type MockMailTransport struct {
	mu    sync.RWMutex
	mails []*email.Email
	err   error
}

func NewMock() *MockMailTransport {
	return &MockMailTransport{}
}

func (m *MockMailTransport) Send(mail *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.mails = append(m.mails, mail)
	return nil
}

// FailWith makes every following Send return err. nil restores delivery.
func (m *MockMailTransport) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
}

func (m *MockMailTransport) GetLastSentMail() *email.Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.mails) == 0 {
		return nil
	}

	return m.mails[len(m.mails)-1]
}

func (m *MockMailTransport) GetSentMails() []*email.Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]*email.Email, len(m.mails))
	copy(res, m.mails)

	return res
}
