package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"savingsTracker/internal/fsutil"
	"savingsTracker/models"
)

// CredentialRepository is the flat-file credential store: one JSON object
// whose keys are usernames and whose values are {"password", "role"}.
// Every call reads the file again; nothing is cached between calls.
type CredentialRepository struct {
	path string
	mu   sync.Mutex
}

// NewCredentialRepository creates a store backed by the JSON file at path.
// The file is created lazily on the first registration.
func NewCredentialRepository(path string) *CredentialRepository {
	return &CredentialRepository{path: path}
}

// Path returns the backing file path.
func (r *CredentialRepository) Path() string { return r.path }

// Load reads the full mapping. A missing file yields an empty mapping.
func (r *CredentialRepository) Load(ctx context.Context) (map[string]models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *CredentialRepository) load() (map[string]models.Credential, error) {
	data, ok, err := fsutil.ReadFileIfExists(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials: %v", ErrStorageUnavailable, err)
	}
	out := map[string]models.Credential{}
	if !ok || len(data) == 0 {
		return out, nil
	}
	var raw map[string]models.StoredCredential
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStorageUnavailable, filepath.Base(r.path), err)
	}
	for name, v := range raw {
		out[name] = models.Credential{Username: name, Password: v.Password, Role: v.Role}
	}
	return out, nil
}

// Save overwrites the file with creds.
func (r *CredentialRepository) Save(ctx context.Context, creds map[string]models.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(creds)
}

func (r *CredentialRepository) save(creds map[string]models.Credential) error {
	raw := make(map[string]models.StoredCredential, len(creds))
	for name, c := range creds {
		raw[name] = models.StoredCredential{Password: c.Password, Role: c.Role}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := fsutil.WriteFileAtomic(r.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Verify returns the stored role when username exists and password matches exactly.
func (r *CredentialRepository) Verify(ctx context.Context, username, password string) (models.Role, error) {
	creds, err := r.Load(ctx)
	if err != nil {
		return "", err
	}
	c, ok := creds[username]
	if !ok || c.Password != password {
		return "", ErrAuthenticationFailed
	}
	if !c.Role.Valid() {
		return "", fmt.Errorf("%w: credential %q has invalid role %q", ErrStorageUnavailable, username, c.Role)
	}
	return c.Role, nil
}

// Register inserts a new credential and persists the store immediately.
// Role defaults to user. An existing username is left untouched.
func (r *CredentialRepository) Register(ctx context.Context, username, password string, role models.Role) (*models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if role == "" {
		role = models.RoleUser
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		return nil, err
	}
	if _, exists := creds[username]; exists {
		return nil, ErrUsernameTaken
	}
	c := models.Credential{Username: username, Password: password, Role: role}
	creds[username] = c
	if err := r.save(creds); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByUsername returns the credential for username, or nil when absent.
func (r *CredentialRepository) GetByUsername(ctx context.Context, username string) (*models.Credential, error) {
	creds, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := creds[username]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// List returns every credential ordered by username.
func (r *CredentialRepository) List(ctx context.Context) ([]models.Credential, error) {
	creds, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return sortedCredentials(creds), nil
}

// HealthCheck verifies the credential file, when present, is readable and well formed.
func (r *CredentialRepository) HealthCheck(ctx context.Context) error {
	_, err := r.Load(ctx)
	return err
}

func sortedCredentials(creds map[string]models.Credential) []models.Credential {
	out := make([]models.Credential, 0, len(creds))
	for _, c := range creds {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
