package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandyfoma/goshopper/internal/model"
)

// noopStorage satisfies service.Storage with empty results so tests can
// override only the methods they exercise.
type noopStorage struct{}

func (noopStorage) SaveProduct(context.Context, *model.CanonicalProduct) error { return nil }
func (noopStorage) GetProduct(context.Context, string) (*model.CanonicalProduct, error) {
	return nil, nil
}
func (noopStorage) GetAllProducts(context.Context) ([]model.CanonicalProduct, error) {
	return nil, nil
}
func (noopStorage) SaveMapping(context.Context, *model.LearnedMapping) error { return nil }
func (noopStorage) GetMapping(context.Context, string, string) (*model.LearnedMapping, error) {
	return nil, nil
}
func (noopStorage) GetAllMappings(context.Context) ([]model.LearnedMapping, error) {
	return nil, nil
}
func (noopStorage) IncrementMappingUseCount(context.Context, string, string) error { return nil }
func (noopStorage) SaveTemplate(context.Context, *model.ShopTemplate) error        { return nil }
func (noopStorage) GetTemplate(context.Context, string) (*model.ShopTemplate, error) {
	return nil, nil
}
func (noopStorage) GetAllTemplates(context.Context) ([]model.ShopTemplate, error) { return nil, nil }
func (noopStorage) SaveSample(context.Context, *model.LearningSample) error       { return nil }
func (noopStorage) GetSamplesByShop(context.Context, string) ([]model.LearningSample, error) {
	return nil, nil
}
func (noopStorage) CountSamplesByShop(context.Context, string) (int, error) { return 0, nil }
func (noopStorage) GetAllSamples(context.Context) ([]model.LearningSample, error) {
	return nil, nil
}
func (noopStorage) Migrate(context.Context) error { return nil }
func (noopStorage) Close() error                  { return nil }

type templateStore struct {
	noopStorage
	templates []model.ShopTemplate
	err       error
}

func (s *templateStore) GetAllTemplates(_ context.Context) ([]model.ShopTemplate, error) {
	return s.templates, s.err
}

func TestRegistryLoad(t *testing.T) {
	store := &templateStore{templates: []model.ShopTemplate{
		{ShopID: "ShopD", ItemPattern: "pattern-d", Source: model.TemplateCurated},
		{ShopID: "ShopF", ItemPattern: "pattern-f", Source: model.TemplateLearned},
	}}

	registry := NewRegistry(store)
	_, ok := registry.Template("ShopD")
	assert.False(t, ok, "registry should be empty before Load")

	require.NoError(t, registry.Load(context.Background()))
	assert.Equal(t, 2, registry.Count())

	got, ok := registry.Template("ShopD")
	require.True(t, ok)
	assert.Equal(t, "pattern-d", got.ItemPattern)

	_, ok = registry.Template("ShopX")
	assert.False(t, ok)
}

func TestRegistryLoadError(t *testing.T) {
	store := &templateStore{err: errors.New("disk gone")}
	registry := NewRegistry(store)
	assert.Error(t, registry.Load(context.Background()))
}

func TestRegistryPutOverrides(t *testing.T) {
	registry := NewRegistry(nil)
	require.NoError(t, registry.Load(context.Background()))

	registry.Put(model.ShopTemplate{ShopID: "ShopD", ItemPattern: "v1"})
	registry.Put(model.ShopTemplate{ShopID: "ShopD", ItemPattern: "v2"})

	got, ok := registry.Template("ShopD")
	require.True(t, ok)
	assert.Equal(t, "v2", got.ItemPattern)
	assert.Equal(t, 1, registry.Count())
}
