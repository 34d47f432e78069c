package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/session"
	"github.com/Windi-Fikriyansyah/labourlink/internal/testutil"
	"github.com/Windi-Fikriyansyah/labourlink/internal/upload"
)

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	sessions *Sessions
	uploads  *upload.Store
	revoker  *session.MemoryRevoker
}

func newEnv(t *testing.T, google ...*GoogleOAuthHandler) *testEnv {
	t.Helper()
	gdb := testutil.NewDB(t)
	revoker := session.NewMemoryRevoker()
	sessions := &Sessions{
		Signer:  session.NewSigner("test-secret", time.Hour),
		Revoker: revoker,
		Cookie:  "ll_session",
		Log:     zap.NewNop(),
	}
	uploads := upload.NewStore(t.TempDir(), 5<<20)

	opts := Options{
		DB:          gdb,
		Log:         zap.NewNop(),
		Sessions:    sessions,
		Uploads:     uploads,
		Development: true,
	}
	if len(google) > 0 {
		google[0].DB = gdb
		google[0].Sessions = sessions
		opts.Google = google[0]
	}
	return &testEnv{
		app:      NewApp(opts),
		db:       gdb,
		sessions: sessions,
		uploads:  uploads,
		revoker:  revoker,
	}
}

func (e *testEnv) cookieFor(t *testing.T, u models.User) string {
	t.Helper()
	token, err := e.sessions.Signer.Sign(&u)
	require.NoError(t, err)
	return e.sessions.Cookie + "=" + token
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) get(t *testing.T, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return e.do(t, req)
}

func (e *testEnv) postForm(t *testing.T, path string, vals url.Values, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return e.do(t, req)
}

type upfile struct {
	field, name, contentType string
	body                     []byte
}

func (e *testEnv) postMultipart(t *testing.T, path string, vals url.Values, file *upfile, cookie string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range vals {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return e.do(t, req)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// data returns the "data" object of a page response.
func data(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	out := decode(t, resp)
	require.Equal(t, true, out["success"], out)
	d, ok := out["data"].(map[string]any)
	require.True(t, ok, out)
	return d
}

func reload(t *testing.T, gdb *gorm.DB, u models.User) models.User {
	t.Helper()
	var out models.User
	require.NoError(t, gdb.First(&out, "id = ?", u.ID).Error)
	return out
}
