package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const guidePage = `<!DOCTYPE html>
<html><head><title>Kyoto</title></head>
<body>
<article>
<h1>Kyoto</h1>
<p>Kyoto is the former imperial capital of Japan, famous for its temples and gardens.
The city holds over a thousand Buddhist temples alongside hundreds of Shinto shrines,
and its historic districts preserve wooden townhouses and traditional tea culture.</p>
<p>Spring and autumn are the most popular seasons to visit, when cherry blossoms and
maple leaves draw large crowds to the eastern hills. Summers are hot and humid while
winters stay mostly mild with the occasional dusting of snow on temple roofs.</p>
<p>The city is compact and well served by buses and two subway lines, which makes it
easy to cover several districts in a single day on foot and public transport.</p>
</article>
</body></html>`

func TestGuideLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Kyoto", r.URL.Path)
		w.Write([]byte(guidePage))
	}))
	defer srv.Close()

	g := NewGuideLookup()
	g.BaseURL = srv.URL + "/"

	got := g.Lookup(context.Background(), "Plan a trip to Kyoto")

	assert.Contains(t, got, "temples")
	assert.NotContains(t, got, "<p>")
}

func TestGuideLookup_CitySpacesBecomeUnderscores(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(guidePage))
	}))
	defer srv.Close()

	g := NewGuideLookup()
	g.BaseURL = srv.URL + "/"
	g.Lookup(context.Background(), "weekend in New York")

	assert.Equal(t, "/New_York", gotPath)
}

func TestGuideLookup_NoCity(t *testing.T) {
	g := NewGuideLookup()

	got := g.Lookup(context.Background(), "organize my week")

	assert.Equal(t, "No destination guide available", got)
}

func TestGuideLookup_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewGuideLookup()
	g.BaseURL = srv.URL + "/"

	got := g.Lookup(context.Background(), "trip to Atlantis")

	assert.Equal(t, "Destination guide not available for Atlantis", got)
}

func TestGuideLookup_TruncatesLongPages(t *testing.T) {
	long := "<p>" + strings.Repeat("A very long travel paragraph. ", 200) + "</p>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><article><h1>Kyoto</h1>" + long + long + "</article></body></html>"))
	}))
	defer srv.Close()

	g := NewGuideLookup()
	g.BaseURL = srv.URL + "/"

	got := g.Lookup(context.Background(), "trip to Kyoto")

	assert.LessOrEqual(t, len(got), maxGuideLength+len("..."))
	assert.True(t, strings.HasSuffix(got, "..."))
}
