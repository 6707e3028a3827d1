package pagination_test

import (
	"net/http/httptest"
	"testing"

	"inventorymis/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseDefaults(t *testing.T) {
	params := pagination.Parse(testContext(""))
	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
	assert.Empty(t, params.Search)
}

func TestParseClampsLimit(t *testing.T) {
	params := pagination.Parse(testContext("page=3&limit=500"))
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, pagination.MaxLimit, params.Limit)
	assert.Equal(t, 2*pagination.MaxLimit, params.Offset)
}

func TestParseInvalidValues(t *testing.T) {
	params := pagination.Parse(testContext("page=-1&limit=abc"))
	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}

func TestParseTrimsSearch(t *testing.T) {
	params := pagination.Parse(testContext("q=%20rice%20"))
	assert.Equal(t, "rice", params.Search)
}
