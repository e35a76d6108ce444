package checksum

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	sum, err := Reader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "ef46db3751d8e999", sum)

	content := "plan_name,pay_date,deposit_date,amount\n"
	sum, err = Reader(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64String(content)), sum)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	fromFile, err := File(path)
	require.NoError(t, err)
	fromReader, err := Reader(strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, fromReader, fromFile)

	_, err = File(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
