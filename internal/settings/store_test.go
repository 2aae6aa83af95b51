package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeKV struct {
	data    map[string][]byte
	loadErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Load(_ context.Context, key string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	raw, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (f *fakeKV) Save(_ context.Context, key string, value []byte) error {
	f.data[key] = value
	return nil
}

type fakeBroadcaster struct {
	keys []string
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, key string) error {
	f.keys = append(f.keys, key)
	return nil
}

func newTestStore(kv KV) *Store {
	return NewStore(kv, nil, zap.NewNop())
}

func TestLoadAbsentFallsBackToDefaults(t *testing.T) {
	store := newTestStore(newFakeKV())
	store.Load(context.Background())

	cfg := store.Settings()
	assert.Equal(t, 2.0, cfg.TTRThresholds.WarningHours)
	assert.Equal(t, 1.0, cfg.TTRThresholds.CriticalHours)
	assert.Equal(t, 60, cfg.TTRThresholds.NoUpdateAlertMinutes)
	assert.Equal(t, 8.0, cfg.CategoryTTR["major"])
	assert.NotEmpty(t, cfg.WhatsAppTemplates.ShareTemplate)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	kv := newFakeKV()
	// Partial blob from an older version: only thresholds stored.
	kv.data[SettingsKey] = []byte(`{"ttrThresholds":{"warningHours":5}}`)

	store := newTestStore(kv)
	store.Load(context.Background())

	cfg := store.Settings()
	assert.Equal(t, 5.0, cfg.TTRThresholds.WarningHours)
	assert.Equal(t, 8.0, cfg.CategoryTTR["major"], "unstored fields keep defaults")
	assert.NotEmpty(t, cfg.WhatsAppTemplates.UpdateTemplate)
}

func TestLoadCorruptBlobFallsBackToDefaults(t *testing.T) {
	kv := newFakeKV()
	kv.data[SettingsKey] = []byte(`{not json`)

	store := newTestStore(kv)
	store.Load(context.Background())

	assert.Equal(t, DefaultSettings().TTRThresholds, store.Settings().TTRThresholds)
}

func TestLoadErrorFallsBackToDefaults(t *testing.T) {
	kv := newFakeKV()
	kv.loadErr = errors.New("connection refused")

	store := newTestStore(kv)
	store.Load(context.Background())

	assert.Equal(t, DefaultSettings().TTRThresholds, store.Settings().TTRThresholds)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := newTestStore(kv)

	cfg := store.Settings()
	cfg.TTRThresholds.WarningHours = 6
	cfg.CategoryTTR["premium"] = 1
	require.NoError(t, store.SaveSettings(context.Background(), cfg))

	// A second store reading the same blob sees the saved values.
	other := newTestStore(kv)
	other.Load(context.Background())
	assert.Equal(t, 6.0, other.Settings().TTRThresholds.WarningHours)
	assert.Equal(t, 1.0, other.Settings().CategoryTTR["premium"])
}

func TestSettingsReturnsCopy(t *testing.T) {
	store := newTestStore(newFakeKV())

	cfg := store.Settings()
	cfg.CategoryTTR["major"] = 999

	assert.Equal(t, 8.0, store.Settings().CategoryTTR["major"], "callers cannot mutate shared state")
}

func TestResetSettings(t *testing.T) {
	kv := newFakeKV()
	store := newTestStore(kv)

	cfg := store.Settings()
	cfg.TTRThresholds.WarningHours = 9
	require.NoError(t, store.SaveSettings(context.Background(), cfg))
	require.NoError(t, store.ResetSettings(context.Background()))

	assert.Equal(t, 2.0, store.Settings().TTRThresholds.WarningHours)
}

func TestSubscribeFiresOnSave(t *testing.T) {
	store := newTestStore(newFakeKV())

	fired := 0
	store.Subscribe(func() { fired++ })

	require.NoError(t, store.SaveSettings(context.Background(), store.Settings()))
	assert.Equal(t, 1, fired)

	require.NoError(t, store.SaveOptions(context.Background(), store.Options()))
	assert.Equal(t, 2, fired)
}

func TestBroadcastOnSave(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	store := NewStore(newFakeKV(), broadcaster, zap.NewNop())

	require.NoError(t, store.SaveSettings(context.Background(), store.Settings()))
	require.NoError(t, store.SaveOptions(context.Background(), store.Options()))

	assert.Equal(t, []string{SettingsKey, OptionsKey}, broadcaster.keys)
}

func TestAllowed(t *testing.T) {
	list := []string{"Kabel Putus", "ODP Rusak"}

	assert.True(t, Allowed(list, "Kabel Putus"))
	assert.False(t, Allowed(list, "Tsunami"))
	assert.True(t, Allowed(list, OptionOther), "the escape value always passes")
	assert.True(t, Allowed(nil, OptionOther))
}
