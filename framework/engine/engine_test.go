package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"corenet/framework"
	"corenet/framework/router"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textComponent(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func wrapComponent(tag string, child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "["+tag+"]"); err != nil {
			return err
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "[/"+tag+"]")
		return err
	})
}

func testTable() *router.Table {
	return router.MustNewTable([]router.RouteEntry{
		{Path: "/events", Aliases: []string{"/"}, Name: "Events", Component: textComponent("events")},
		{Path: "/executions", Name: "Executions", Component: textComponent("executions")},
	})
}

func bufferRenderer(rendered *string) func(*http.Request, http.ResponseWriter, templ.Component) error {
	return func(_ *http.Request, _ http.ResponseWriter, component templ.Component) error {
		var b bytes.Buffer
		if err := component.Render(context.Background(), &b); err != nil {
			return err
		}
		*rendered = b.String()
		return nil
	}
}

func TestServeRouteRendersMatchedComponent(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config{
		Table:      testTable(),
		RenderPage: bufferRenderer(&rendered),
	})
	require.NoError(t, err)

	require.True(t, routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/executions", nil)))
	assert.Equal(t, "executions", rendered)

	assert.False(t, routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil)))
}

func TestServeRouteAliasSetsCanonicalLink(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config{
		Table:      testTable(),
		RenderPage: bufferRenderer(&rendered),
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.True(t, routeEngine.ServeRoute(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, "events", rendered)
	assert.Equal(t, `</events>; rel="canonical"`, rec.Header().Get("Link"))

	direct := httptest.NewRecorder()
	require.True(t, routeEngine.ServeRoute(direct, httptest.NewRequest(http.MethodGet, "/events", nil)))
	assert.Empty(t, direct.Header().Get("Link"))
}

func TestServeRouteLayoutOrderAndNavigation(t *testing.T) {
	var rendered string
	var seen framework.Navigation

	routeEngine, err := New(Config{
		Table:    testTable(),
		Revision: "v1",
		Layouts: []framework.LayoutRenderer{
			func(nav framework.Navigation, child templ.Component) templ.Component {
				seen = nav
				return wrapComponent("outer", child)
			},
			func(_ framework.Navigation, child templ.Component) templ.Component {
				return wrapComponent("inner", child)
			},
		},
		RenderPage: bufferRenderer(&rendered),
	})
	require.NoError(t, err)

	require.True(t, routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, "[outer][inner]events[/inner][/outer]", rendered)
	assert.Equal(t, "v1", seen.Revision)
	assert.Len(t, seen.Entries, 2)
	assert.Equal(t, "Events", seen.Current.Entry.Name)
	assert.True(t, seen.Current.ViaAlias)
}

func TestServeRouteSkipsLayoutsForPartialRequests(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config{
		Table: testTable(),
		Layouts: []framework.LayoutRenderer{
			func(_ framework.Navigation, child templ.Component) templ.Component {
				return wrapComponent("layout", child)
			},
		},
		IsPartialRequest: func(*http.Request) bool { return true },
		RenderPage:       bufferRenderer(&rendered),
	})
	require.NoError(t, err)

	require.True(t, routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil)))
	assert.Equal(t, "events", rendered)
}

func TestServeRouteRenderFailureGoesToServerError(t *testing.T) {
	errBoom := errors.New("boom")
	var captured error

	routeEngine, err := New(Config{
		Table: testTable(),
		RenderPage: func(*http.Request, http.ResponseWriter, templ.Component) error {
			return errBoom
		},
		HandleServerError: func(_ http.ResponseWriter, err error) {
			captured = err
		},
	})
	require.NoError(t, err)

	require.True(t, routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil)))
	require.ErrorIs(t, captured, errBoom)
	assert.Contains(t, captured.Error(), `"Events"`)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{RenderPage: func(*http.Request, http.ResponseWriter, templ.Component) error { return nil }})
	require.ErrorContains(t, err, "route table is required")

	_, err = New(Config{Table: testTable()})
	require.ErrorContains(t, err, "render page callback is required")
}

func TestDefaultNotFoundAndServerErrorResponders(t *testing.T) {
	routeEngine, err := New(Config{
		Table:      testTable(),
		RenderPage: func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
	})
	require.NoError(t, err)

	notFound := httptest.NewRecorder()
	routeEngine.RespondNotFound(notFound, httptest.NewRequest(http.MethodGet, "/missing", nil), framework.NotFoundContext{RequestPath: "/missing"})
	assert.Equal(t, http.StatusNotFound, notFound.Code)

	serverError := httptest.NewRecorder()
	routeEngine.RespondServerError(serverError, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, serverError.Code)
}
