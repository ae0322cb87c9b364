package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretGetter reads string secrets by name.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SecretValueAPI is the Secrets Manager call SecretsClient depends on.
type SecretValueAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient resolves catalog secrets once per process. Credentials are
// read at startup only, so entries never expire.
type SecretsClient struct {
	api SecretValueAPI

	mu     sync.Mutex
	values map[string]string
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return NewSecretsClientWithAPI(secretsmanager.NewFromConfig(cfg))
}

func NewSecretsClientWithAPI(api SecretValueAPI) *SecretsClient {
	return &SecretsClient{api: api, values: make(map[string]string)}
}

func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[name]; ok {
		return v, nil
	}

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(name)})
	if err != nil {
		return "", fmt.Errorf("read secret %s: %w", name, err)
	}
	v := strings.TrimSpace(sdkaws.ToString(out.SecretString))
	if v == "" {
		return "", fmt.Errorf("secret %s has no string value", name)
	}
	s.values[name] = v
	return v, nil
}

// DBCredentials is the JSON document stored for the catalog database. It
// matches the layout RDS writes for managed secrets, where port is a number.
type DBCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	DBName   string `json:"dbname"`
}

func (c *DBCredentials) UnmarshalJSON(b []byte) error {
	type plain DBCredentials
	var aux struct {
		plain
		Port json.RawMessage `json:"port"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*c = DBCredentials(aux.plain)
	c.Port = strings.Trim(string(aux.Port), `"`)
	if c.Port == "null" {
		c.Port = ""
	}
	return nil
}

// ReadDBCredentials reads and decodes the database credentials secret.
func ReadDBCredentials(ctx context.Context, sm SecretGetter, name string) (*DBCredentials, error) {
	raw, err := sm.GetSecret(ctx, name)
	if err != nil {
		return nil, err
	}
	var creds DBCredentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, fmt.Errorf("secret %s is not a credentials document: %w", name, err)
	}
	return &creds, nil
}
