package service_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/vitrine/internal/adapters/http/api"
	"github.com/okian/vitrine/internal/adapters/mail"
	app "github.com/okian/vitrine/internal/app"
	"github.com/okian/vitrine/internal/domain/overlay"
	. "github.com/smartystreets/goconvey/convey"
)

// newIntegrationStack wires a real service behind a real HTTP server, with a
// stub standing in for the mail provider.
func newIntegrationStack(t *testing.T, opts ...app.Option) (*httptest.Server, *providerStub) {
	t.Helper()

	stub := &providerStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(stub.server.Close)

	opts = append([]app.Option{
		app.WithSender(mail.NewBrevoClient("test-key", mail.WithBaseURL(stub.server.URL))),
		app.WithMailAddresses("noreply@example.com", "owner@example.com"),
	}, opts...)

	mux := http.NewServeMux()
	server := api.NewServer(app.New(opts...))
	server.Register(context.Background(), mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, stub
}

// providerStub records provider requests and answers like the real API.
type providerStub struct {
	server   *httptest.Server
	received []map[string]interface{}
}

func (p *providerStub) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var payload map[string]interface{}
	_ = json.Unmarshal(body, &payload)
	p.received = append(p.received, payload)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"messageId":"stub"}`))
}

func TestContactIntegration(t *testing.T) {
	Convey("Given the full contact stack", t, func() {
		srv, stub := newIntegrationStack(t)

		post := func(body string) *http.Response {
			resp, err := http.Post(srv.URL+"/api/contact", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			return resp
		}

		Convey("When a valid submission is posted", func() {
			resp := post(`{"name":"Ada","email":"ada@example.com","message":"hello"}`)
			defer resp.Body.Close()

			Convey("Then the submission reaches the provider and the caller gets 200", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(stub.received, ShouldHaveLength, 1)

				payload := stub.received[0]
				So(payload["subject"], ShouldEqual, "New Portfolio Contact from Ada")
				So(payload["htmlContent"], ShouldContainSubstring, "ada@example.com")

				to := payload["to"].([]interface{})[0].(map[string]interface{})
				So(to["email"], ShouldEqual, "owner@example.com")
			})
		})

		Convey("When the same client posts past the ceiling", func() {
			limitedSrv, limitedStub := newIntegrationStack(t, app.WithRateLimit(15*time.Minute, 2))

			var last int
			for i := 0; i < 3; i++ {
				resp, err := http.Post(limitedSrv.URL+"/api/contact", "application/json",
					strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"hello"}`))
				So(err, ShouldBeNil)
				last = resp.StatusCode
				resp.Body.Close()
			}

			Convey("Then the final submission is rejected with 429 and never forwarded", func() {
				So(last, ShouldEqual, http.StatusTooManyRequests)
				So(limitedStub.received, ShouldHaveLength, 2)
			})
		})

		Convey("When the submission fails validation", func() {
			resp := post(`{"name":"Ada","email":"nope","message":"hello"}`)
			defer resp.Body.Close()

			Convey("Then nothing reaches the provider", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(stub.received, ShouldBeEmpty)
			})
		})
	})
}

func TestGalleryIntegration(t *testing.T) {
	Convey("Given the full gallery stack", t, func() {
		srv, _ := newIntegrationStack(t)

		Convey("When a frame is requested over HTTP", func() {
			resp, err := http.Post(srv.URL+"/api/gallery/frame", "application/json",
				strings.NewReader(`{"camera":{"x":0,"y":7,"z":12},"viewport":{"width":1600,"height":900}}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it returns a complete snapshot with anchors", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var snapshot overlay.Snapshot
				So(json.NewDecoder(resp.Body).Decode(&snapshot), ShouldBeNil)
				So(snapshot.Occluded, ShouldHaveLength, 6)
				So(snapshot.Anchors, ShouldHaveLength, 6)
			})
		})

		Convey("When a stream connection drives the camera", func() {
			wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/gallery/stream"
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			So(err, ShouldBeNil)
			defer conn.Close()

			Convey("Then each camera message yields a snapshot", func() {
				So(conn.WriteJSON(map[string]interface{}{
					"camera": map[string]float64{"x": 0, "y": 7, "z": 12},
				}), ShouldBeNil)

				var snapshot overlay.Snapshot
				So(conn.ReadJSON(&snapshot), ShouldBeNil)
				So(snapshot.Occluded, ShouldHaveLength, 6)
				So(snapshot.Opacity, ShouldHaveLength, 6)
			})
		})
	})
}
