package dashboardstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/dietdash/internal/domain/dashboard"
	"github.com/yanqian/dietdash/internal/domain/nutrition"
)

// ValkeyStore persists analyses in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "dietdash"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, fingerprint string) (nutrition.Analysis, bool, error) {
	if fingerprint == "" {
		return nutrition.Analysis{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.analysisKey(fingerprint)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nutrition.Analysis{}, false, nil
		}
		return nutrition.Analysis{}, false, err
	}
	var analysis nutrition.Analysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nutrition.Analysis{}, false, fmt.Errorf("decode cached analysis: %w", err)
	}
	return analysis, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, fingerprint string, analysis nutrition.Analysis, ttl time.Duration) error {
	if fingerprint == "" {
		return nil
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.analysisKey(fingerprint)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) analysisKey(fingerprint string) string {
	return fmt.Sprintf("%s:analysis:%s", s.prefix, fingerprint)
}

var _ dashboard.Store = (*ValkeyStore)(nil)
