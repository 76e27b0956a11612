package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/empdept/internal/domain"
)

type fakeSeeder struct {
	seeded  domain.DataSource
	cleared bool
	err     error
}

func (f *fakeSeeder) SeedData(_ context.Context, src domain.DataSource) error {
	f.seeded = src
	return f.err
}

func (f *fakeSeeder) ClearData(context.Context) error {
	f.cleared = true
	return f.err
}

func TestPerformSeed(t *testing.T) {
	testCases := map[string]struct {
		path    string
		seedErr error
		wantErr string
	}{
		"embedded fixture": {},
		"missing fixture file": {
			path:    filepath.Join(t.TempDir(), "none.yaml"),
			wantErr: "loading fixture failed",
		},
		"seeder error is returned": {
			seedErr: errors.New("connection reset"),
			wantErr: "seeding failed: connection reset",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSeeder{err: tc.seedErr}
			var out bytes.Buffer
			err := performSeed(context.Background(), s, tc.path, &out)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s.seeded)
			assert.Len(t, s.seeded.Emps(), 6)
			assert.Contains(t, out.String(), "Seeding 4 departments, 6 employees, 5 salary grades")
		})
	}
}

func TestPerformClear(t *testing.T) {
	testCases := map[string]struct {
		yes         bool
		input       string
		seedErr     error
		wantCleared bool
		wantErr     string
	}{
		"confirmed":     {input: "yes\n", wantCleared: true},
		"declined":      {input: "no\n"},
		"no input":      {input: ""},
		"flag skips it": {yes: true, wantCleared: true},
		"clear error":   {yes: true, seedErr: errors.New("locked"), wantCleared: true, wantErr: "clear failed: locked"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSeeder{err: tc.seedErr}
			var out bytes.Buffer
			err := performClear(context.Background(), s, tc.yes, strings.NewReader(tc.input), &out)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantCleared, s.cleared)
		})
	}
}

func TestRun_UnknownAction(t *testing.T) {
	err := run(context.Background(), "drop", "", false)
	assert.ErrorContains(t, err, "unknown action: drop")
}
