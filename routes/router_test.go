package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lotbones1-code/productv/config"
	"github.com/lotbones1-code/productv/models"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

func TestMain(m *testing.M) {
	// Config is loaded once per process; overrides must land before that.
	os.Setenv("TEMPLATE_GLOB", "../templates/*.html")
	os.Setenv("STATIC_DIR", "../static")
	os.Setenv("GIN_MODE", "test")
	os.Setenv("LOG_LEVEL", "error")

	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CheckIn{},
		&models.ResearchEntry{},
		&models.AuditLogEntry{},
	))
	require.NoError(t, store.New(db).Seed(config.Get().UserNames))
	return SetupRouter(db), db
}

func doGet(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPost(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set on response", name)
	return nil
}

func login(t *testing.T, r *gin.Engine, name string) *http.Cookie {
	t.Helper()
	w := doPost(r, "/login", url.Values{"name": {name}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
	return responseCookie(t, w, "session")
}

func TestRootRedirectsToPublic(t *testing.T) {
	r, _ := newTestApp(t)

	w := doGet(r, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))
}

func TestPublicBoardRenders(t *testing.T) {
	r, _ := newTestApp(t)

	w := doGet(r, "/public")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Shamil")
	assert.Contains(t, body, "Halit")
}

func TestLoginFlow(t *testing.T) {
	r, _ := newTestApp(t)

	session := login(t, r, "shamil")

	w := doGet(r, "/dashboard", session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Shamil")
}

func TestLoginUnknownName(t *testing.T) {
	r, _ := newTestApp(t)

	w := doPost(r, "/login", url.Values{"name": {"Nobody"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	flash := responseCookie(t, w, utils.FlashCookieName)
	assert.Contains(t, flash.Value, "error")
}

func TestDashboardRequiresLogin(t *testing.T) {
	r, _ := newTestApp(t)

	w := doGet(r, "/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestCheckinUpsertKeepsOneRowPerDay(t *testing.T) {
	r, db := newTestApp(t)
	session := login(t, r, "Shamil")

	w := doPost(r, "/checkin", url.Values{"note": {"first"}}, session)
	require.Equal(t, http.StatusFound, w.Code)
	w = doPost(r, "/checkin", url.Values{"note": {"second <b>pass</b>"}}, session)
	require.Equal(t, http.StatusFound, w.Code)

	var rows []models.CheckIn
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, utils.CurrentDay(), rows[0].Day)
	assert.Equal(t, "second pass", rows[0].Note)
}

func TestResearchCreateClampsFormValues(t *testing.T) {
	r, db := newTestApp(t)
	session := login(t, r, "Shamil")

	w := doPost(r, "/research", url.Values{
		"title":         {"BTC range"},
		"summary":       {"watching <b>70k</b>"},
		"tickers":       {" btc , eth , btc "},
		"links":         {"not a url, https://a.example, javascript:alert(1)"},
		"confidence":    {"9"},
		"minutes_spent": {"-5"},
	}, session)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var entries []models.ResearchEntry
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "BTC range", entry.Title)
	assert.Equal(t, "watching 70k", entry.Summary)
	assert.Equal(t, "BTC,ETH", entry.Tickers)
	assert.Equal(t, []string{"https://a.example/"}, entry.LinkList())
	assert.Equal(t, 5, entry.Confidence)
	assert.Equal(t, 0, entry.MinutesSpent)
	assert.Equal(t, utils.CurrentDay(), entry.Day)
}

func TestResearchCreateRequiresTitleAndSummary(t *testing.T) {
	r, db := newTestApp(t)
	session := login(t, r, "Shamil")

	w := doPost(r, "/research", url.Values{
		"title":   {"   "},
		"summary": {"something"},
	}, session)
	require.Equal(t, http.StatusFound, w.Code)

	flash := responseCookie(t, w, utils.FlashCookieName)
	assert.Contains(t, flash.Value, "error")

	var count int64
	require.NoError(t, db.Model(&models.ResearchEntry{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestResearchEditHidesExistenceFromNonOwners(t *testing.T) {
	r, db := newTestApp(t)
	shamil := login(t, r, "Shamil")
	halit := login(t, r, "Halit")

	w := doPost(r, "/research", url.Values{
		"title":   {"original"},
		"summary": {"mine"},
	}, shamil)
	require.Equal(t, http.StatusFound, w.Code)

	var entry models.ResearchEntry
	require.NoError(t, db.First(&entry).Error)

	form := url.Values{"title": {"hijacked"}, "summary": {"still mine?"}}
	asOwnerOfNothing := doPost(r, "/research/"+itoa(entry.ID)+"/edit", form, halit)
	asMissingID := doPost(r, "/research/99999/edit", form, halit)

	// Non-owned and non-existent entries must be indistinguishable.
	assert.Equal(t, asMissingID.Code, asOwnerOfNothing.Code)
	assert.Equal(t, asMissingID.Header().Get("Location"), asOwnerOfNothing.Header().Get("Location"))
	assert.Equal(t,
		responseCookie(t, asMissingID, utils.FlashCookieName).Value,
		responseCookie(t, asOwnerOfNothing, utils.FlashCookieName).Value,
	)

	require.NoError(t, db.First(&entry, entry.ID).Error)
	assert.Equal(t, "original", entry.Title)
}

func TestResearchDeleteByOwner(t *testing.T) {
	r, db := newTestApp(t)
	session := login(t, r, "Shamil")

	w := doPost(r, "/research", url.Values{
		"title":   {"short lived"},
		"summary": {"gone soon"},
	}, session)
	require.Equal(t, http.StatusFound, w.Code)

	var entry models.ResearchEntry
	require.NoError(t, db.First(&entry).Error)

	w = doPost(r, "/research/"+itoa(entry.ID)+"/delete", nil, session)
	require.Equal(t, http.StatusFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.ResearchEntry{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAPIStats(t *testing.T) {
	r, _ := newTestApp(t)
	session := login(t, r, "Shamil")

	w := doPost(r, "/checkin", url.Values{"note": {"in"}}, session)
	require.Equal(t, http.StatusFound, w.Code)

	resp := doGet(r, "/api/stats")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "application/json")

	var payload struct {
		GeneratedAt string `json:"generated_at"`
		Data        []struct {
			Name        string `json:"name"`
			Streak      int    `json:"streak"`
			Completion7 struct {
				TotalDays     int `json:"totalDays"`
				CompletedDays int `json:"completedDays"`
				Percent       int `json:"percent"`
			} `json:"completion7"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.GeneratedAt)
	require.Len(t, payload.Data, 2)

	byName := map[string]int{}
	for i, d := range payload.Data {
		byName[d.Name] = i
	}
	shamil := payload.Data[byName["Shamil"]]
	halit := payload.Data[byName["Halit"]]

	assert.Equal(t, 1, shamil.Streak)
	assert.Equal(t, 1, shamil.Completion7.CompletedDays)
	assert.Equal(t, 14, shamil.Completion7.Percent)
	assert.Equal(t, 0, halit.Streak)
	assert.Equal(t, 0, halit.Completion7.Percent)
}

func TestAPIStatsCORS(t *testing.T) {
	r, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownProfileIs404(t *testing.T) {
	r, _ := newTestApp(t)

	w := doGet(r, "/u/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileRenders(t *testing.T) {
	r, _ := newTestApp(t)

	w := doGet(r, "/u/halit")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Halit")
}

func TestNotFoundIsJSONUnderAPI(t *testing.T) {
	r, _ := newTestApp(t)

	w := doGet(r, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = doGet(r, "/definitely/not/here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestLogoutClearsSession(t *testing.T) {
	r, _ := newTestApp(t)
	session := login(t, r, "Shamil")

	w := doPost(r, "/logout", nil, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))

	cleared := responseCookie(t, w, "session")
	assert.Equal(t, -1, cleared.MaxAge)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
