package secrets

import (
	"os"

	"github.com/hiconvo/notifier/log"
)

type Client interface {
	Get(id, fallback string) string
}

type clientImpl struct {
	secrets map[string]string
}

// NewClient returns a Client that looks ids up in secrets first and then in
// the environment. secrets may be nil.
func NewClient(secrets map[string]string) Client {
	secretMap := make(map[string]string, len(secrets))
	for k, v := range secrets {
		secretMap[k] = v
	}

	return &clientImpl{
		secrets: secretMap,
	}
}

func (c *clientImpl) Get(id, fallback string) string {
	s := c.secrets[id]
	if s == "" {
		s = os.Getenv(id)
	}

	if s == "" {
		log.Printf("secrets.Get(id=%s): using fallback", id)
		return fallback
	}

	return s
}
