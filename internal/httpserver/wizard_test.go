package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

func TestWizardActions(t *testing.T) {
	svc := &stubWizardSvc{result: newStubResult()}
	router := newTestRouter(t, Deps{WizardSvc: svc})

	rec := doJSON(router, http.MethodPost, "/api/wizard/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"sess-1"`) || !strings.Contains(rec.Body.String(), `"notices":[]`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	for _, action := range []string{"next", "back", "continue", "add-more", "submit"} {
		rec := doJSON(router, http.MethodPost, fmt.Sprintf("/api/wizard/sessions/sess-1/%s", action), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", action, rec.Code)
		}
		if got := svc.calls[len(svc.calls)-1]; got != action {
			t.Fatalf("expected %s to be called, got %s", action, got)
		}
		if svc.lastID != "sess-1" {
			t.Fatalf("%s: unexpected id %q", action, svc.lastID)
		}
	}
}

func TestWizardSetters(t *testing.T) {
	svc := &stubWizardSvc{result: newStubResult()}
	router := newTestRouter(t, Deps{WizardSvc: svc})

	if rec := doJSON(router, http.MethodPut, "/api/wizard/sessions/sess-1/step", `{"step":3}`); rec.Code != http.StatusOK {
		t.Fatalf("step: expected 200, got %d", rec.Code)
	}
	if svc.lastStep != 3 {
		t.Fatalf("expected step 3, got %d", svc.lastStep)
	}
	if rec := doJSON(router, http.MethodPut, "/api/wizard/sessions/sess-1/step", `{"step":9}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("step out of range: expected 400, got %d", rec.Code)
	}

	if rec := doJSON(router, http.MethodPut, "/api/wizard/sessions/sess-1/modal", `{"open":false}`); rec.Code != http.StatusOK {
		t.Fatalf("modal: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodPut, "/api/wizard/sessions/sess-1/modal", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("modal without open: expected 400, got %d", rec.Code)
	}

	if rec := doJSON(router, http.MethodPut, "/api/wizard/sessions/sess-1/size-category", `{"sizeCategory":"youth"}`); rec.Code != http.StatusOK {
		t.Fatalf("size-category: expected 200, got %d", rec.Code)
	}
	if svc.lastCat != domain.SizeCategoryYouth {
		t.Fatalf("expected youth, got %q", svc.lastCat)
	}
	if rec := doJSON(router, http.MethodPut, "/api/wizard/sessions/sess-1/size-category", `{"sizeCategory":"baby"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad size-category: expected 400, got %d", rec.Code)
	}

	form := `{"garmentType":"hoodie","sizes":{"large":[{"quantity":"2","color":"black"}]},"printLocations":["back"],"designs":{}}`
	if rec := doJSON(router, http.MethodPut, "/api/wizard/sessions/sess-1/form", form); rec.Code != http.StatusOK {
		t.Fatalf("form: expected 200, got %d", rec.Code)
	}
	if svc.lastForm.GarmentType != domain.GarmentHoodie {
		t.Fatalf("form not passed through: %+v", svc.lastForm)
	}
}

func TestWizardErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrSessionSubmitted, http.StatusConflict},
		{domain.ErrConflict, http.StatusConflict},
		{fmt.Errorf("%w: unknown brand", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &stubWizardSvc{result: newStubResult(), err: tc.err}
		router := newTestRouter(t, Deps{WizardSvc: svc})

		rec := doJSON(router, http.MethodPost, "/api/wizard/sessions/sess-1/next", "")
		if rec.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
		rec = doJSON(router, http.MethodGet, "/api/wizard/sessions/sess-1", "")
		if rec.Code != tc.want {
			t.Errorf("get %v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}
