package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/nestlist/pkg/tree"
)

// ErrNotFound is returned by Load for a document that was never saved.
var ErrNotFound = errors.New("store: document not found")

const documentSuffix = ".json"

// Document is the persisted form of one tree and its cursor.
type Document struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	ActiveIndex int           `json:"activeIndex" yaml:"activeIndex"`
	Tree        tree.Snapshot `json:"tree" yaml:"tree"`
	Updated     time.Time     `json:"updated" yaml:"updated"`
}

// NewDocument returns an empty document with a fresh id.
func NewDocument(name string) *Document {
	return &Document{
		ID:          uuid.NewString(),
		Name:        name,
		ActiveIndex: -1,
	}
}

// Persistence defines the persistence contract for documents.
type Persistence interface {
	Documents(ctx context.Context) []string
	Load(name string) (*Document, error)
	Save(doc *Document) error
	Delete(name string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	// No read cache: the CLI, the panel and the MCP server write the same
	// files from separate processes.
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Documents(ctx context.Context) []string {
	var names []string
	for key := range p.d.Keys(ctx.Done()) {
		name, ok := fromKey(key)
		if !ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) Load(name string) (*Document, error) {
	key, err := toKey(name)
	if err != nil {
		return nil, err
	}
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", name, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", name, err)
	}
	doc := &Document{}
	if err := json.Unmarshal(val, doc); err != nil {
		return nil, fmt.Errorf("store: decode %q: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}

func (p *persistence) Save(doc *Document) error {
	if doc == nil {
		return errors.New("store: nil document")
	}
	key, err := toKey(doc.Name)
	if err != nil {
		return err
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.Updated = time.Now().UTC()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %q: %w", doc.Name, err)
	}
	return nil
}

func (p *persistence) Delete(name string) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("store: erase %q: %w", name, err)
	}
	return nil
}

func flatTransform(string) []string {
	return []string{}
}

// toKey makes a filename safe key from a document name.
func toKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("store: document name required")
	}
	return base64.RawURLEncoding.EncodeToString([]byte(name)) + documentSuffix, nil
}

func fromKey(key string) (string, bool) {
	encoded, ok := strings.CutSuffix(key, documentSuffix)
	if !ok {
		return "", false
	}
	name, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	return string(name), true
}
