package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"elango-backend/middleware"
	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func productDoc(id, categoryID primitive.ObjectID, name string, price float64, stock int, active bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "description", Value: name},
		{Key: "price", Value: price},
		{Key: "image", Value: "/images/" + name + ".jpg"},
		{Key: "categoryId", Value: categoryID},
		{Key: "stock", Value: stock},
		{Key: "isActive", Value: active},
	}
}

func checkoutRequest(t *testing.T, userID primitive.ObjectID, payload models.CreateOrderRequest) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(data))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, userID.Hex())
	c.Set(middleware.CtxRole, models.RoleUser)
	return c, w
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Street:  "12 Market Road",
		City:    "Chennai",
		State:   "Tamil Nadu",
		ZipCode: "600001",
		Country: "India",
	}
}

func TestCreateOrderComputesTotalFromCurrentPrices(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("two line items", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		userID := primitive.NewObjectID()
		categoryID := primitive.NewObjectID()
		dalID := primitive.NewObjectID()
		gheeID := primitive.NewObjectID()

		productsNS := fmt.Sprintf("%s.products", mt.DB.Name())
		usersNS := fmt.Sprintf("%s.users", mt.DB.Name())
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
				productDoc(dalID, categoryID, "Toor Dal", 120, 80, true)),
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
				productDoc(gheeID, categoryID, "Pure Ghee", 500, 25, true)),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: userID}, {Key: "name", Value: "Test User"}, {Key: "email", Value: "user@test.com"}}),
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
				productDoc(dalID, categoryID, "Toor Dal", 120, 80, true),
				productDoc(gheeID, categoryID, "Pure Ghee", 500, 25, true)),
		)

		c, w := checkoutRequest(mt.T, userID, models.CreateOrderRequest{
			Products: []models.OrderItemInput{
				{ProductID: dalID.Hex(), Quantity: 2},
				{ProductID: gheeID.Hex(), Quantity: 1},
			},
			ShippingAddress: testAddress(),
		})
		ctrl.CreateOrder(c)

		require.Equal(mt, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Order models.Order `json:"order"`
		}
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &resp))

		// Totals come from the fetched documents, not client prices.
		assert.Equal(mt, 2*120.0+1*500.0, resp.Order.TotalAmount)
		assert.Equal(mt, models.OrderStatusPending, resp.Order.Status)
		require.Len(mt, resp.Order.Products, 2)
		assert.Equal(mt, 120.0, resp.Order.Products[0].Price)
		assert.Equal(mt, 500.0, resp.Order.Products[1].Price)
	})
}

func TestCreateOrderUnknownProductWritesNothing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("missing product", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		productsNS := fmt.Sprintf("%s.products", mt.DB.Name())
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch),
		)

		c, w := checkoutRequest(mt.T, primitive.NewObjectID(), models.CreateOrderRequest{
			Products:        []models.OrderItemInput{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		ctrl.CreateOrder(c)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		for _, ev := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "insert", ev.CommandName, "no order document may be written")
		}
	})
}

func TestCreateOrderInsufficientStockWritesNothing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("quantity over stock", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		productID := primitive.NewObjectID()
		productsNS := fmt.Sprintf("%s.products", mt.DB.Name())
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
				productDoc(productID, primitive.NewObjectID(), "Fresh Paneer", 200, 1, true)),
		)

		c, w := checkoutRequest(mt.T, primitive.NewObjectID(), models.CreateOrderRequest{
			Products:        []models.OrderItemInput{{ProductID: productID.Hex(), Quantity: 5}},
			ShippingAddress: testAddress(),
		})
		ctrl.CreateOrder(c)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		for _, ev := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "insert", ev.CommandName, "no order document may be written")
		}
	})
}

func TestCreateOrderInactiveProductRejected(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("inactive product", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		productID := primitive.NewObjectID()
		productsNS := fmt.Sprintf("%s.products", mt.DB.Name())
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
				productDoc(productID, primitive.NewObjectID(), "Khoya", 300, 20, false)),
		)

		c, w := checkoutRequest(mt.T, primitive.NewObjectID(), models.CreateOrderRequest{
			Products:        []models.OrderItemInput{{ProductID: productID.Hex(), Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		ctrl.CreateOrder(c)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		for _, ev := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "insert", ev.CommandName, "no order document may be written")
		}
	})
}
