package analyze

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTheory(t *testing.T, amount int, from, to string, _ bool) {}

func TestLocate(t *testing.T) {
	name, file, line, err := Locate(sampleTheory)
	require.NoError(t, err)

	assert.Equal(t, "autoparam/internal/analyze.sampleTheory", name)
	assert.Equal(t, "loader_test.go", filepath.Base(file))
	assert.Positive(t, line)

	_, _, _, err = Locate(42)
	assert.Error(t, err)

	var nilFunc func()
	_, _, _, err = Locate(nilFunc)
	assert.Error(t, err)
}

func TestLoadFunc_Declaration(t *testing.T) {
	info, err := LoadFunc(sampleTheory)
	require.NoError(t, err)

	assert.Equal(t, []Param{
		{Name: "t", Type: "*testing.T"},
		{Name: "amount", Type: "int"},
		{Name: "from", Type: "string"},
		{Name: "to", Type: "string"},
		{Name: "", Type: "bool"},
	}, info.Params)
	assert.Equal(t, []string{"amount", "from", "to", ""}, info.Names(1))
	assert.True(t, strings.HasSuffix(info.File, "loader_test.go"))
}

func TestLoadFunc_Literal(t *testing.T) {
	body := func(t *testing.T, items []string, limits map[string]int) {}

	info, err := LoadFunc(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"items", "limits"}, info.Names(1))
	assert.Equal(t, "map[string]int", info.Params[2].Type)
}

func TestFuncInfo_Names(t *testing.T) {
	info := &FuncInfo{Params: []Param{{Name: "t"}, {Name: "x"}}}

	assert.Equal(t, []string{"t", "x"}, info.Names(0))
	assert.Equal(t, []string{"x"}, info.Names(1))
	assert.Empty(t, info.Names(5))
}

func TestCache(t *testing.T) {
	loads := 0
	cache := NewCache()
	cache.load = func(fn any) (*FuncInfo, error) {
		loads++
		return &FuncInfo{Name: "stub", Params: []Param{{Name: "t"}}}, nil
	}

	first, err := cache.Func(sampleTheory)
	require.NoError(t, err)

	second, err := cache.Func(sampleTheory)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 1, cache.Len())

	_, err = cache.Func(TestCache)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("boom")
	cache := NewCache()
	cache.load = func(any) (*FuncInfo, error) { return nil, boom }

	_, err := cache.Func(sampleTheory)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, cache.Len())

	_, err = cache.Func("not a func")
	assert.Error(t, err)
}
