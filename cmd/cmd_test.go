package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamusis/gendex/internal/config"
	"github.com/kamusis/gendex/internal/detector"
	"github.com/kamusis/gendex/internal/dict"
)

// setupCmdTest points gendex at the sample dictionary under a temporary
// HOME and captures command output.
func setupCmdTest(t *testing.T) (home string, out *bytes.Buffer) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)

	sample, err := filepath.Abs(filepath.Join("..", "internal", "dict", "testdata", "nam_dict_sample.txt"))
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENDEX_DATASET", sample)
	t.Setenv("GENDEX_SNAPSHOT_DIR", filepath.Join(home, "cache"))
	for _, k := range []string{"GENDEX_ENCODING", "GENDEX_CASE_SENSITIVE", "GENDEX_UNKNOWN_VALUE", "GENDEX_FIELD_WIDTH", "GENDEX_SNAPSHOT"} {
		t.Setenv(k, "")
	}

	out = &bytes.Buffer{}
	oldOut, oldErr := stdout, stderr
	stdout, stderr = out, out
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })

	resetFlags(t)
	return home, out
}

func resetFlags(t *testing.T) {
	t.Helper()
	flagDataset, flagCaseInsensitive, flagUnknown, flagNoSnapshot, flagVerbose = "", false, "", false, false
	flagCountry, flagJSON = "", false
	flagCompileForce, flagInitForce = false, false
	t.Cleanup(func() {
		flagDataset, flagCaseInsensitive, flagUnknown, flagNoSnapshot, flagVerbose = "", false, "", false, false
		flagCountry, flagJSON = "", false
		flagCompileForce, flagInitForce = false, false
	})
}

func TestRunGender(t *testing.T) {
	_, out := setupCmdTest(t)
	if err := runGender(nil, []string{"Sally", "Bob", "Pauline"}); err != nil {
		t.Fatalf("runGender: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Sally  female", "Bob    male", "Pauline  unknown"} {
		if !strings.Contains(strings.Join(strings.Fields(got), " "), strings.Join(strings.Fields(want), " ")) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunGender_CountryAndUnknownFlag(t *testing.T) {
	_, out := setupCmdTest(t)
	flagCountry = "GB"
	flagUnknown = "andy"
	flagJSON = true
	if err := runGender(nil, []string{"Jamie", "Pauley"}); err != nil {
		t.Fatalf("runGender: %v", err)
	}
	var res []genderResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(res) != 2 || res[0].Gender != "mostly_male" || res[1].Gender != "andy" {
		t.Fatalf("unexpected results: %+v", res)
	}
}

func TestRunGender_UnknownCountry(t *testing.T) {
	setupCmdTest(t)
	flagCountry = "ZZ"
	err := runGender(nil, []string{"Bob"})
	if err == nil || !strings.Contains(err.Error(), "ZZ") {
		t.Fatalf("expected unknown country error, got %v", err)
	}
}

func TestRunDetail_JSON(t *testing.T) {
	_, out := setupCmdTest(t)
	flagJSON = true
	if err := runDetail(nil, []string{"Sally"}); err != nil {
		t.Fatalf("runDetail: %v", err)
	}
	var obs []detector.Observation
	if err := json.Unmarshal(out.Bytes(), &obs); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(obs) != 7 || obs[0] != (detector.Observation{Gender: "female", Country: "great_britain", Frequency: 0.46}) {
		t.Fatalf("unexpected observations: %+v", obs)
	}
}

func TestRunDetail_Table(t *testing.T) {
	_, out := setupCmdTest(t)
	if err := runDetail(nil, []string{"Pauline"}); err != nil {
		t.Fatalf("runDetail: %v", err)
	}
	if !strings.Contains(out.String(), "not in the dictionary") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := runDetail(nil, []string{"Bob"}); err != nil {
		t.Fatalf("runDetail: %v", err)
	}
	if !strings.Contains(out.String(), "the_netherlands") || !strings.Contains(out.String(), "0.38") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunKnown(t *testing.T) {
	_, out := setupCmdTest(t)
	flagCaseInsensitive = true
	if err := runKnown(nil, []string{"sally", "CARLOS"}); err != nil {
		t.Fatalf("runKnown: %v\n%s", err, out.String())
	}
	err := runKnown(nil, []string{"Sally", "Pauline"})
	if err == nil || !strings.Contains(err.Error(), "Pauline") {
		t.Fatalf("expected missing-name error, got %v", err)
	}
}

func TestRunCountries(t *testing.T) {
	_, out := setupCmdTest(t)
	if err := runCountries(nil, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "great_britain") || !strings.Contains(out.String(), "AE BH EG QA SA") {
		t.Fatalf("unexpected listing:\n%s", out.String())
	}

	out.Reset()
	if err := runCountries(nil, []string{"GB", "usa"}); err != nil {
		t.Fatalf("runCountries: %v", err)
	}
	if err := runCountries(nil, []string{"ZZ"}); err == nil {
		t.Fatalf("expected error for ZZ")
	}
}

func TestRunCompile_ThenSnapshotUsed(t *testing.T) {
	home, out := setupCmdTest(t)
	if err := runCompile(nil, nil); err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	if !strings.Contains(out.String(), "snapshot written") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	matches, _ := filepath.Glob(filepath.Join(home, "cache", "*.mp"))
	if len(matches) != 1 {
		t.Fatalf("expected one snapshot, got %v", matches)
	}

	out.Reset()
	if err := runCompile(nil, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Fatalf("second compile should be a no-op:\n%s", out.String())
	}

	d, err := loadDetector()
	if err != nil {
		t.Fatal(err)
	}
	if !d.LoadInfo().FromSnapshot {
		t.Fatalf("detector did not use the compiled snapshot")
	}

	flagNoSnapshot = true
	d, err = loadDetector()
	if err != nil {
		t.Fatal(err)
	}
	if d.LoadInfo().FromSnapshot {
		t.Fatalf("--no-snapshot ignored")
	}
}

func TestRunInit_InstallsDataset(t *testing.T) {
	home, _ := setupCmdTest(t)
	sample := os.Getenv("GENDEX_DATASET")
	t.Setenv("GENDEX_DATASET", "")

	if err := runInit(nil, []string{sample}); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if cfg.Dataset != filepath.Join(home, ".gendex", "nam_dict.txt") {
		t.Fatalf("dataset = %s", cfg.Dataset)
	}
	if _, err := os.Stat(cfg.Dataset); err != nil {
		t.Fatalf("dictionary not installed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".gendex", ".env")); err != nil {
		t.Fatalf(".env template missing: %v", err)
	}

	// Same file again is a no-op; a different file needs --force.
	if err := runInit(nil, []string{sample}); err != nil {
		t.Fatalf("second runInit: %v", err)
	}
	other := filepath.Join(t.TempDir(), "other.txt")
	if err := os.WriteFile(other, []byte("M  Otto\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runInit(nil, []string{other}); err == nil {
		t.Fatalf("expected refusal without --force")
	}
	flagInitForce = true
	if err := runInit(nil, []string{other}); err != nil {
		t.Fatalf("runInit --force: %v", err)
	}
	d, err := loadDetector()
	if err != nil {
		t.Fatal(err)
	}
	if !d.NameKnown("Otto") || d.NameKnown("Sally") {
		t.Fatalf("replacement dictionary not in effect")
	}
}

func TestRunDoctor(t *testing.T) {
	_, out := setupCmdTest(t)
	if err := runDoctor(nil, nil); err != nil {
		t.Fatalf("runDoctor: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "14 records") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	bad := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(bad, []byte("Z  Broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flagDataset = bad
	out.Reset()
	if err := runDoctor(nil, nil); err == nil {
		t.Fatalf("expected doctor failure for malformed dictionary:\n%s", out.String())
	}
}

func TestLoadDetector_MissingDataset(t *testing.T) {
	setupCmdTest(t)
	flagDataset = filepath.Join(t.TempDir(), "absent.txt")
	if _, err := loadDetector(); err == nil || !strings.Contains(err.Error(), "gendex doctor") {
		t.Fatalf("expected hint to run doctor, got %v", err)
	}
}

func TestSnapshotKeyMatchesCompile(t *testing.T) {
	setupCmdTest(t)
	cfg, err := effectiveConfig()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cfg.Dataset)
	if err != nil {
		t.Fatal(err)
	}
	if err := runCompile(nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dict.SnapshotPath(cfg.SnapshotDir, dict.SnapshotKey(data, parseOptions(cfg)))); err != nil {
		t.Fatalf("compile used a different key: %v", err)
	}
}
