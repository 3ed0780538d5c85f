package front

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/brightline-events/siteadmin/internal/db"
	"github.com/brightline-events/siteadmin/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) *content.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:front_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return content.NewRepository(conn)
}

func newRouter(repo *content.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterFrontRoutes(router, repo)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutesWithoutDatabase(t *testing.T) {
	router := newRouter(nil)

	testimonials := serve(router, http.MethodGet, "/api/testimonials", "")
	if testimonials.Code != http.StatusOK || strings.TrimSpace(testimonials.Body.String()) != `{"testimonials":[]}` {
		t.Fatalf("unexpected testimonials response %d: %s", testimonials.Code, testimonials.Body.String())
	}

	contact := serve(router, http.MethodGet, "/api/contact", "")
	if contact.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", contact.Code)
	}
	var info content.ContactInfo
	if err := json.Unmarshal(contact.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode contact: %v", err)
	}
	if info.Email != "" || info.Addresses == nil || len(info.Addresses) != 0 {
		t.Fatalf("expected empty contact info, got %+v", info)
	}

	message := serve(router, http.MethodPost, "/api/contact-messages", `{"name":"Ana","email":"ana@example.com","message":"Hi"}`)
	if message.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", message.Code)
	}
}

func TestPublicTestimonialsHideInactive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	for _, row := range []*models.Testimonial{
		{Quote: "Shown on the site", Author: "Ana", Order: 1, IsActive: true},
		{Quote: "Hidden from the site", Author: "Bruno", Order: 0, IsActive: true},
	} {
		if err := repo.CreateTestimonial(ctx, row); err != nil {
			t.Fatalf("create testimonial: %v", err)
		}
	}
	if _, err := repo.UpdateTestimonial(ctx, 2, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	rec := serve(newRouter(repo), http.MethodGet, "/api/testimonials", "")
	var body struct {
		Testimonials []models.Testimonial `json:"testimonials"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Testimonials) != 1 || body.Testimonials[0].Author != "Ana" {
		t.Fatalf("expected only the active testimonial, got %+v", body.Testimonials)
	}
}

func TestContactMessageSubmission(t *testing.T) {
	repo := newTestRepository(t)
	router := newRouter(repo)

	invalid := serve(router, http.MethodPost, "/api/contact-messages", `{"name":"Ana","email":"nope","message":"Hi"}`)
	if invalid.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", invalid.Code)
	}
	tooLong := serve(router, http.MethodPost, "/api/contact-messages",
		fmt.Sprintf(`{"name":"Ana","email":"ana@example.com","message":%q}`, strings.Repeat("x", 2001)))
	if tooLong.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for long message, got %d", tooLong.Code)
	}

	created := serve(router, http.MethodPost, "/api/contact-messages",
		`{"name":"<Ana>","email":"ana@example.com","subject":"Booking","message":"Hello <script>there"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}

	page, err := repo.ListMessages(context.Background(), content.MessageFilter{})
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if page.Total != 1 || page.UnreadCount != 1 {
		t.Fatalf("expected one unread message, got %+v", page)
	}
	stored := page.Messages[0]
	if stored.Name != "Ana" || strings.ContainsAny(stored.Message, "<>") {
		t.Fatalf("expected sanitized message, got %+v", stored)
	}
	if stored.Subject == nil || *stored.Subject != "Booking" {
		t.Fatalf("expected subject to be stored, got %v", stored.Subject)
	}
}
