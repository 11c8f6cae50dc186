package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tabgrid/internal/app"
	"github.com/vk/tabgrid/internal/hcl"
	"github.com/vk/tabgrid/internal/testutil"
)

const fruitTable = `
table "fruits" {
  skippable_rows = true

  column "Name" {
    type     = string
    synonyms = ["Fruit"]
  }
  column "Count" {
    type    = u32
    default = 0
  }
}
`

const fruitCSV = "Fruit,Count,Origin\napple,3,es\npear,x,it\n"

type result struct {
	out string
	app *app.App
	dir string
	err error
}

// runHeadless builds and runs the app against files written to a temporary
// directory. Paths in cfg are relative to that directory.
func runHeadless(t *testing.T, files map[string]string, cfg app.Config) result {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	for _, p := range []*string{&cfg.TablePath, &cfg.DataPath, &cfg.ViewPath, &cfg.LogFile} {
		if *p != "" {
			*p = filepath.Join(dir, *p)
		}
	}
	cfg.Headless = true
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appCfg, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}
	testutil.LogOnFailure(t, out)
	a := app.NewApp(out, appCfg, hcl.NewLoader())
	err = a.Run(context.Background())
	return result{out: out.String(), app: a, dir: dir, err: err}
}

// row returns the fields of the first output line starting with first.
func row(out, first string) []string {
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) > 0 && f[0] == first {
			return f
		}
	}
	return nil
}

func TestRun_HeadlessImport(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{"table.hcl": fruitTable, "fruits.csv": fruitCSV}

	// --- Act ---
	res := runHeadless(t, files, app.Config{TablePath: "table.hcl", DataPath: "fruits.csv"})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "fruits: loaded 2 rows, 1 values kept as text")
	assert.Equal(t, []string{"Name*", "Count*", "Origin"}, row(res.out, "Name*"))
	assert.Equal(t, []string{"apple", "3", "es"}, row(res.out, "apple"))
	assert.Equal(t, []string{"pear", "x", "it"}, row(res.out, "pear"))
	testutil.AssertLogged(t, res.out, "INFO", "Data file imported.")
	assert.Equal(t, 2, res.app.Store().RowCount())
	assert.True(t, res.app.Store().AreRowsSkippable())
	assert.False(t, res.app.Store().PersistentFlags().IsReadOnly)
}

func TestRun_NoDataFileShowsDeclaredColumns(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{"table.hcl": fruitTable}

	// --- Act ---
	res := runHeadless(t, files, app.Config{TablePath: "table.hcl"})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "fruits: empty")
	assert.Equal(t, []string{"Name*", "Count*"}, row(res.out, "Name*"))
	assert.Equal(t, 0, res.app.Store().RowCount())
}

func TestRun_DataWithoutTableDefinition(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{"fruits.tsv": "Fruit\tCount\napple\t3\n"}

	// --- Act ---
	res := runHeadless(t, files, app.Config{DataPath: "fruits.tsv"})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "fruits.tsv: loaded 1 rows")
	assert.Equal(t, []string{"Fruit", "Count"}, row(res.out, "Fruit"))
	assert.Equal(t, []string{"apple", "3"}, row(res.out, "apple"))
}

func TestRun_CommandLineOverridesImportBlock(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"table.hcl":  fruitTable + "\nimport {\n  max_rows = 1\n}\n",
		"fruits.csv": fruitCSV,
	}
	maxRows := 5

	// --- Act ---
	res := runHeadless(t, files, app.Config{
		TablePath: "table.hcl",
		DataPath:  "fruits.csv",
		NoHeader:  true,
		MaxRows:   &maxRows,
	})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "loaded 3 rows")
	assert.Equal(t, 3, res.app.Store().RowCount())
}

func TestRun_ImportBlockApplies(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"table.hcl":  fruitTable + "\nimport {\n  max_rows = 1\n}\n",
		"fruits.csv": fruitCSV,
	}

	// --- Act ---
	res := runHeadless(t, files, app.Config{TablePath: "table.hcl", DataPath: "fruits.csv"})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.Equal(t, 1, res.app.Store().RowCount())
}

func TestRun_MissingDataFile(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{"table.hcl": fruitTable}

	// --- Act ---
	res := runHeadless(t, files, app.Config{TablePath: "table.hcl", DataPath: "nope.csv"})

	// --- Assert ---
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "failed to import")
	testutil.AssertLogged(t, res.out, "ERROR", "Import failed.")
}

func TestRun_ReadOnly(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{"fruits.csv": fruitCSV}

	// --- Act ---
	res := runHeadless(t, files, app.Config{DataPath: "fruits.csv", ReadOnly: true})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.True(t, res.app.Store().PersistentFlags().IsReadOnly)
}

func TestRun_ViewIsLoadedAndSaved(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"table.hcl":  fruitTable,
		"fruits.csv": fruitCSV,
		"view.hcl":   "view {\n  column_order = [\"Origin\", \"Name\"]\n  show_column_types = false\n}\n",
	}

	// --- Act ---
	res := runHeadless(t, files, app.Config{TablePath: "table.hcl", DataPath: "fruits.csv", ViewPath: "view.hcl"})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.Equal(t, []string{"Origin", "Name*", "Count*"}, row(res.out, "Origin"))
	assert.Nil(t, row(res.out, "str"), "column types are hidden")

	saved, err := os.ReadFile(filepath.Join(res.dir, "view.hcl"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), `"Origin", "Name", "Count"`)
}

func TestRun_LogFile(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{"fruits.csv": fruitCSV}

	// --- Act ---
	res := runHeadless(t, files, app.Config{DataPath: "fruits.csv", LogFile: "tabgrid.log"})

	// --- Assert ---
	require.NoError(t, res.err)
	assert.NotContains(t, res.out, "level=")
	logs, err := os.ReadFile(filepath.Join(res.dir, "tabgrid.log"))
	require.NoError(t, err)
	testutil.AssertLogged(t, string(logs), "INFO", "Data file imported.")
}

func TestNewApp_PanicsOnInvalidTable(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{"table.hcl": `table "x" { column "a" {`})
	cfg, err := app.NewConfig(app.Config{TablePath: filepath.Join(dir, "table.hcl"), Headless: true})
	require.NoError(t, err)

	// --- Act ---
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		app.NewApp(&testutil.SafeBuffer{}, cfg, hcl.NewLoader())
	}()

	// --- Assert ---
	require.NotNil(t, recovered, "NewApp should panic")
	err, ok := recovered.(error)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}
