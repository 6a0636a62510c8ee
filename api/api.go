// Package api exposes the voting HTTP surface: a legacy route family used
// by the standalone web app and an /api/ family used by the Next.js
// frontend, with equivalent semantics.
package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

// Handler holds the dependencies of every route.
type Handler struct {
	repo     voter.Repository
	svc      *voter.Service
	apiToken string
}

// New returns a Handler. apiToken is the static bearer value required in
// the body of mutating /api/ requests; empty disables the check.
func New(repo voter.Repository, svc *voter.Service, apiToken string) *Handler {
	return &Handler{repo: repo, svc: svc, apiToken: apiToken}
}

// Register wires every route onto the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.root)
	e.POST("/login", h.login)
	e.POST("/upload-photo", h.uploadPhoto)
	e.POST("/submit-ballot", h.submitBallot)
	e.GET("/live-counts", h.liveCounts)

	e.POST("/api/test", h.apiTest)
	e.POST("/api/login", h.apiLogin)
	e.POST("/api/is_there", h.apiIsThere)
	e.POST("/api/is_vote", h.apiIsVote)
	e.POST("/api/is_vote_specific", h.apiIsVoteSpecific)
	e.POST("/api/vote", h.apiVote)
	e.POST("/api/save_attendance", h.apiSaveAttendance)
	e.GET("/api/live_count", h.apiLiveCount)
}

// ErrorHandler converts every uncaught error into a 500 carrying only the
// message, never a stack trace.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Terjadi kesalahan pada sistem"
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	log.Printf("[%s] %s failed: %v\n", c.Request().Method, c.Path(), err)
	if !c.Response().Committed {
		c.JSON(code, map[string]string{"message": message})
	}
}

// validAPIToken implements the static bearer check: when a token is
// configured, the request body must carry it exactly.
func (h *Handler) validAPIToken(bodyToken string) bool {
	if h.apiToken == "" {
		return true
	}
	return bodyToken == h.apiToken
}

func invalidToken(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid Token"})
}

func systemError(c echo.Context, err error) error {
	log.Printf("request on %s failed: %v\n", c.Path(), err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Terjadi kesalahan pada sistem"})
}

func (h *Handler) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Pemira API Backend is running",
		"version": "1.0.0",
	})
}

func (h *Handler) login(c echo.Context) error {
	in := struct {
		NIM   string `json:"nim"`
		Token string `json:"token"`
	}{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "NIM dan token harus diisi."})
	}
	v, err := h.svc.Authenticate(in.NIM, in.Token)
	if errors.Is(err, voter.ErrInvalidCredential) {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "NIM atau Token salah! Silakan cek kembali email ITB Anda.",
		})
	}
	if err != nil {
		return systemError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Verifikasi Berhasil",
		"name":    v.Name,
	})
}

func (h *Handler) uploadPhoto(c echo.Context) error {
	in := struct {
		NIM           string `json:"nim"`
		CloudinaryURL string `json:"cloudinaryUrl"`
	}{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Gagal menyimpan foto"})
	}
	if err := h.repo.SaveAttendance(in.NIM, in.CloudinaryURL); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Gagal menyimpan foto"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Foto berhasil diverifikasi"})
}

func (h *Handler) submitBallot(c echo.Context) error {
	in := struct {
		NIM    string `json:"nim"`
		Type   string `json:"type"`
		Choice string `json:"choice"`
	}{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Gagal menyimpan suara"})
	}
	category := voter.Category(in.Type)
	err := h.svc.SubmitVote(in.NIM, category, in.Choice)
	switch {
	case errors.Is(err, voter.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Voter tidak ditemukan"})
	case errors.Is(err, voter.ErrAlreadyVoted):
		if category == voter.CategoryKahim {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Anda sudah memilih Ketua Himpunan!"})
		}
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Anda sudah memilih Senator!"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Gagal menyimpan suara"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Berhasil submit suara " + in.Type + "!"})
}

func (h *Handler) liveCounts(c echo.Context) error {
	kahimCounts, err := h.repo.CountVotes(voter.CategoryKahim)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Gagal mengambil live count"})
	}
	senatorCounts, err := h.repo.CountVotes(voter.CategorySenator)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Gagal mengambil live count"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"kahimCounts":   kahimCounts,
		"senatorCounts": senatorCounts,
	})
}

func (h *Handler) apiTest(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		body = nil
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"received":  body,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) apiLogin(c echo.Context) error {
	in := struct {
		Username string `json:"username"`
		Pass     string `json:"pass"`
		Token    string `json:"token"`
	}{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Username dan password harus diisi."})
	}
	if !h.validAPIToken(in.Token) {
		return invalidToken(c)
	}
	if in.Username == "" || in.Pass == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Username dan password harus diisi."})
	}
	v, err := h.svc.Authenticate(in.Username, in.Pass)
	if errors.Is(err, voter.ErrInvalidCredential) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "NIM atau Token salah"})
	}
	if err != nil {
		return systemError(c, err)
	}
	if v.FullyVoted() {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Anda sudah menggunakan hak suara!"})
	}
	return c.JSON(http.StatusOK, map[string]string{"ID": v.NIM, "nama": v.Name})
}

func (h *Handler) apiIsThere(c echo.Context) error {
	in := struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}{}
	if err := c.Bind(&in); err != nil {
		return systemError(c, err)
	}
	if !h.validAPIToken(in.Token) {
		return invalidToken(c)
	}
	_, err := h.repo.FindByNIM(in.Username)
	if errors.Is(err, voter.ErrNotFound) {
		return c.JSON(http.StatusOK, map[string]string{"data": "false"})
	}
	if err != nil {
		return systemError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"data": "true"})
}

func (h *Handler) apiIsVote(c echo.Context) error {
	in := struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}{}
	if err := c.Bind(&in); err != nil {
		return systemError(c, err)
	}
	if !h.validAPIToken(in.Token) {
		return invalidToken(c)
	}
	v, err := h.repo.FindByNIM(in.Username)
	if errors.Is(err, voter.ErrNotFound) {
		return c.JSON(http.StatusOK, map[string]string{"data": "false"})
	}
	if err != nil {
		return systemError(c, err)
	}
	if v.FullyVoted() {
		return c.JSON(http.StatusOK, map[string]string{"data": "true"})
	}
	return c.JSON(http.StatusOK, map[string]string{"data": "false"})
}

func (h *Handler) apiIsVoteSpecific(c echo.Context) error {
	in := struct {
		Username string `json:"username"`
		Category string `json:"category"`
		Token    string `json:"token"`
	}{}
	if err := c.Bind(&in); err != nil {
		return systemError(c, err)
	}
	if !h.validAPIToken(in.Token) {
		return invalidToken(c)
	}
	v, err := h.repo.FindByNIM(in.Username)
	if errors.Is(err, voter.ErrNotFound) {
		return c.JSON(http.StatusOK, map[string]string{"data": "false"})
	}
	if err != nil {
		return systemError(c, err)
	}
	voted, err := v.HasVoted(voter.Category(in.Category))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Kategori tidak dikenal"})
	}
	if voted {
		return c.JSON(http.StatusOK, map[string]string{"data": "true"})
	}
	return c.JSON(http.StatusOK, map[string]string{"data": "false"})
}

func (h *Handler) apiVote(c echo.Context) error {
	in := struct {
		Username string `json:"username"`
		Pilihan  string `json:"pilihan"`
		Category string `json:"category"`
		Token    string `json:"token"`
	}{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Gagal menyimpan suara"})
	}
	if !h.validAPIToken(in.Token) {
		return invalidToken(c)
	}
	category := voter.Category(in.Category)
	err := h.svc.SubmitVote(in.Username, category, in.Pilihan)
	switch {
	case errors.Is(err, voter.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Voter tidak ditemukan"})
	case errors.Is(err, voter.ErrAlreadyVoted):
		if category == voter.CategoryKahim {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "Anda sudah memilih Kahim!"})
		}
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Anda sudah memilih Senator!"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Gagal menyimpan suara"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Vote Berhasil"})
}

func (h *Handler) apiSaveAttendance(c echo.Context) error {
	in := struct {
		Username string `json:"username"`
		ImageURL string `json:"imageUrl"`
		Token    string `json:"token"`
	}{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Gagal menyimpan foto"})
	}
	if !h.validAPIToken(in.Token) {
		return invalidToken(c)
	}
	if err := h.repo.SaveAttendance(in.Username, in.ImageURL); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Gagal menyimpan foto"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Foto Tersimpan"})
}

func (h *Handler) apiLiveCount(c echo.Context) error {
	votedBoth, err := h.repo.CountFullyVoted()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Gagal mengambil live count"})
	}
	return c.JSON(http.StatusOK, map[string]int64{"votedBoth": votedBoth})
}
