package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"furuth/database"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "furuth", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"serve"}, {"restore"}, {"export"}, {"import"}, {"orders"}, {"orders", "status"}, {"hash-password"},
	}

	for _, path := range commands {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd.PersistentFlags().Lookup("env-file"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("driver"))

	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)
	output := exportCmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "json", exportCmd.Flags().Lookup("format").DefValue)
}

// run executes the CLI against a SQLite file shared by every call in a test.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--driver", "sqlite"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func useTempStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "furuth.db"))
	return dir
}

const importFile = `[
  {"id": "prod_cap", "name": "Cap", "price": 9.5, "image": "images/cap.png", "category": "kids"},
  {"id": "prod_mug", "name": "Mug", "price": 7, "image": "images/mug.png"},
  {"name": "Broken", "price": "7"}
]`

func TestImportExport(t *testing.T) {
	dir := useTempStore(t)
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, []byte(importFile), 0o600))

	out, err := run(t, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully imported 2 products")

	out, err = run(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "prod_cap"`)
	assert.Contains(t, out, `"id": "prod_mug"`)
	assert.NotContains(t, out, "Broken")

	xlsxPath := filepath.Join(dir, "products.xlsx")
	_, err = run(t, "", "export", "--format", "xlsx", "-o", xlsxPath)
	require.NoError(t, err)
	info, err := os.Stat(xlsxPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = run(t, "", "export", "--format", "csv")
	require.Error(t, err)
}

func TestImportRejectsEmptyFile(t *testing.T) {
	dir := useTempStore(t)
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "no price"}]`), 0o600))

	_, err := run(t, "", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid products")
}

func TestRestore(t *testing.T) {
	dir := useTempStore(t)
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, []byte(importFile), 0o600))
	_, err := run(t, "", "import", path)
	require.NoError(t, err)

	out, err := run(t, "", "restore")
	require.NoError(t, err)
	assert.Contains(t, out, "No data loss detected")

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o600))
	_, err = run(t, "", "import", empty)
	require.Error(t, err, "an empty import never wipes the catalog")

	out, err = run(t, "n\n", "restore", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Restore cancelled")

	out, err = run(t, "y\n", "restore", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 2 products from backup")
}

func TestRestoreAfterLoss(t *testing.T) {
	dir := useTempStore(t)
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, []byte(importFile), 0o600))
	_, err := run(t, "", "import", path)
	require.NoError(t, err)

	store, err := database.OpenSQLite(filepath.Join(dir, "furuth.db"))
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), database.ProductsKey, "[]"))
	require.NoError(t, store.Close())

	out, err := run(t, "y\n", "restore")
	require.NoError(t, err)
	assert.Contains(t, out, "Restore 2 products from the backup")
	assert.Contains(t, out, "Restored 2 products from backup")

	out, err = run(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "prod_cap"`)
}

func TestOrdersEmpty(t *testing.T) {
	useTempStore(t)

	out, err := run(t, "", "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "0 orders: 0 pending, 0 approved, 0 delivered")

	_, err = run(t, "", "orders", "status", "ORD-DOES-NOT-EXIST", "approved")
	require.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "", "hash-password", "s3cret")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}
