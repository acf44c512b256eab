// Copyright (c) 2026 EasyBuy. All rights reserved.

package payment_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/easybuy/api/internal/marketplace/payment"
)

/*
TestCallback acknowledges callbacks and defaults the event name.
*/
func TestCallback(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"named_event", `{"event":"charge.succeeded","amount":1200}`, http.StatusOK, `{"data":{"status":"received","event":"charge.succeeded"}}`},
		{"no_event", `{"amount":1200}`, http.StatusOK, `{"data":{"status":"received","event":"demo"}}`},
		{"empty_body", ``, http.StatusOK, `{"data":{"status":"received","event":"demo"}}`},
		{"not_json", `{oops`, http.StatusBadRequest, ``},
	}

	router := payment.NewHandler().Routes()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, recorder.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, recorder.Body.String())
			}
		})
	}
}
