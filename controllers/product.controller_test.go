package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func catalogRequest(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestGetProductsCategoryLookupFailureIsServerError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("lookup error", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		c, w := catalogRequest(mt.T, "/api/products?category=Masala")
		ctrl.GetProducts(c)

		// A failed lookup is a 500, not a silently unfiltered catalog.
		assert.Equal(mt, http.StatusInternalServerError, w.Code)
	})
}

func TestGetProductsUnresolvableCategorySkipsFilter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("category miss", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		categoryID := primitive.NewObjectID()
		productsNS := fmt.Sprintf("%s.products", mt.DB.Name())
		categoriesNS := fmt.Sprintf("%s.categories", mt.DB.Name())

		mt.AddMockResponses(
			// No category matches the requested name.
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
				productDoc(primitive.NewObjectID(), categoryID, "Basmati Rice", 150, 100, true)),
			// CountDocuments runs as an aggregate.
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: categoryID}, {Key: "name", Value: "Grocery Items"}}),
		)

		c, w := catalogRequest(mt.T, "/api/products?category=Nonexistent")
		ctrl.GetProducts(c)

		require.Equal(mt, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(mt, w.Body.String(), "Basmati Rice")

		// The products query must not have been narrowed by category.
		events := mt.GetAllStartedEvents()
		require.GreaterOrEqual(mt, len(events), 2)
		require.Equal(mt, "find", events[1].CommandName)
		filter := events[1].Command.Lookup("filter").Document()
		_, err := filter.LookupErr("categoryId")
		assert.Error(mt, err, "unresolvable category must leave the set unfiltered")
	})
}
