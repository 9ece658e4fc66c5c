package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/portfolio/internal"
)

// serve runs req through an app whose only route is h wrapped in mw, and
// returns the recorder plus the error the handler chain produced.
func serve(t *testing.T, req *http.Request, h internal.HandlerFunc, mw ...internal.Middleware) (*httptest.ResponseRecorder, error) {
	t.Helper()

	var handlerErr error
	app := internal.New(
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			handlerErr = err
			code := http.StatusInternalServerError
			if httpErr := internal.AsHTTPError(err); httpErr != nil {
				code = httpErr.Code
			}
			return c.String(code, err.Error())
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", h, mw...)
			r.POST("/", h, mw...)
		})),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w, handlerErr
}

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func ok(c internal.Context) error { return c.NoContent(http.StatusNoContent) }
