package theme_test

import (
	"testing"

	"github.com/seezee/launcherhub/internal/config"
	"github.com/seezee/launcherhub/internal/models"
	"github.com/seezee/launcherhub/internal/theme"
)

func f(v float64) *float64 { return &v }

func newTheme(t *testing.T, store config.Store) (*theme.Theme, *config.Manager, *int) {
	t.Helper()
	mgr, err := config.NewManager(store)
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	return theme.New(mgr, func() { calls++ }), mgr, &calls
}

func TestAccent_DefaultsToBrandRed(t *testing.T) {
	th, _, _ := newTheme(t, config.NewMemStore())
	if got := th.Accent(); got != (models.RGB{R: 230, G: 57, B: 70}) {
		t.Errorf("Accent() = %+v, want brand red", got)
	}
	if got := th.CSSVar(); got != "230 57 70" {
		t.Errorf("CSSVar() = %q", got)
	}
}

func TestSetAccentInput_Clamps(t *testing.T) {
	th, _, calls := newTheme(t, config.NewMemStore())

	got, err := th.SetAccentInput(models.RGBInput{R: f(-5), G: f(300), B: f(128.7)})
	if err != nil {
		t.Fatal(err)
	}
	want := models.RGB{R: 0, G: 255, B: 129}
	if got != want || th.Accent() != want {
		t.Errorf("SetAccentInput() = %+v, Accent() = %+v, want %+v", got, th.Accent(), want)
	}
	if *calls != 1 {
		t.Errorf("onChange calls = %d, want 1", *calls)
	}
}

func TestSetAccentInput_RejectsMissingChannel(t *testing.T) {
	th, _, calls := newTheme(t, config.NewMemStore())

	if _, err := th.SetAccentInput(models.RGBInput{R: f(1), G: f(2)}); err == nil {
		t.Fatal("SetAccentInput(missing b) error = nil")
	}
	if th.Accent() != models.DefaultAccent {
		t.Errorf("accent changed to %+v", th.Accent())
	}
	if *calls != 0 {
		t.Errorf("onChange calls = %d, want 0", *calls)
	}
}

func TestSetAccent_SurvivesReload(t *testing.T) {
	dir := t.TempDir()
	store := config.NewJSONStore(dir)
	th, mgr, _ := newTheme(t, store)

	th.SetAccent(models.RGB{R: 255, G: 30, B: 30})
	if err := mgr.Flush(); err != nil {
		t.Fatal(err)
	}

	reopened, _, _ := newTheme(t, config.NewJSONStore(dir))
	if got := reopened.Accent(); got != (models.RGB{R: 255, G: 30, B: 30}) {
		t.Errorf("Accent() after reload = %+v, want {255 30 30}", got)
	}
}

func TestReset(t *testing.T) {
	th, _, _ := newTheme(t, config.NewMemStore())
	th.SetAccent(models.RGB{R: 1, G: 2, B: 3})
	if got := th.Reset(); got != models.DefaultAccent {
		t.Errorf("Reset() = %+v", got)
	}
}

func TestReload_NotifiesOnlyOnChange(t *testing.T) {
	th, mgr, calls := newTheme(t, config.NewMemStore())
	prev := th.Accent()

	th.Reload(prev)
	if *calls != 0 {
		t.Errorf("calls after unchanged reload = %d", *calls)
	}

	next := mgr.Get()
	next.Accent = models.RGB{R: 9, G: 9, B: 9}
	mgr.Replace(next)
	th.Reload(prev)
	if *calls != 1 {
		t.Errorf("calls after changed reload = %d, want 1", *calls)
	}
}

