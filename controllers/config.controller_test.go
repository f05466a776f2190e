package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func configDoc(siteName string) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "singleton", Value: true},
		{Key: "site_name", Value: siteName},
		{Key: "description", Value: models.DefaultDescription},
		{Key: "contact_email", Value: models.DefaultContactEmail},
		{Key: "contact_phone", Value: models.DefaultContactPhone},
	}
}

func jsonRequest(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestGetSiteNameRepeatedReadsAreOneAtomicUpsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("repeated first reads", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		doc := configDoc(models.DefaultSiteName)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}),
		)

		c1, w1 := jsonRequest(mt.T, http.MethodGet, "/api/config/site-name", "")
		ctrl.GetSiteName(c1)
		c2, w2 := jsonRequest(mt.T, http.MethodGet, "/api/config/site-name", "")
		ctrl.GetSiteName(c2)

		require.Equal(mt, http.StatusOK, w1.Code)
		require.Equal(mt, http.StatusOK, w2.Code)
		assert.JSONEq(mt, `{"site_name": "Elango Home Made Products"}`, w1.Body.String())
		assert.Equal(mt, w1.Body.String(), w2.Body.String())

		// Each read is a single upserting findAndModify: no separate
		// find, insert, or update that could race into duplicates.
		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)
		for _, ev := range events {
			assert.Equal(mt, "findAndModify", ev.CommandName)
			assert.True(mt, ev.Command.Lookup("upsert").Boolean())
		}
	})
}

func TestUpdateSiteNameIsOneAtomicUpsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("trimmed single write", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: configDoc("Elango Store")}),
		)

		c, w := jsonRequest(mt.T, http.MethodPut, "/api/config/site-name",
			`{"site_name": "  Elango Store  "}`)
		ctrl.UpdateSiteName(c)

		require.Equal(mt, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(mt, w.Body.String(), "Site name updated successfully")
		assert.Contains(mt, w.Body.String(), "Elango Store")

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 1)
		require.Equal(mt, "findAndModify", events[0].CommandName)

		update := events[0].Command.Lookup("update").Document()
		set := update.Lookup("$set").Document()
		assert.Equal(mt, "Elango Store", set.Lookup("site_name").StringValue())

		// Defaults must not collide with the written field.
		setOnInsert := update.Lookup("$setOnInsert").Document()
		_, err := setOnInsert.LookupErr("site_name")
		assert.Error(mt, err)
	})
}

func TestUpdateConfigWritesOnlyProvidedFields(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("partial update", func(mt *mtest.T) {
		ctrl := &Controller{DB: mt.DB}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: configDoc(models.DefaultSiteName)}),
		)

		c, w := jsonRequest(mt.T, http.MethodPut, "/api/config",
			`{"description": "  Fresh homemade goods  "}`)
		ctrl.UpdateConfig(c)

		require.Equal(mt, http.StatusOK, w.Code, w.Body.String())

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 1)
		require.Equal(mt, "findAndModify", events[0].CommandName)

		update := events[0].Command.Lookup("update").Document()
		set := update.Lookup("$set").Document()
		assert.Equal(mt, "Fresh homemade goods", set.Lookup("description").StringValue())
		_, err := set.LookupErr("site_name")
		assert.Error(mt, err, "absent fields must stay untouched")

		// Untouched fields still get their insert-time defaults.
		setOnInsert := update.Lookup("$setOnInsert").Document()
		assert.Equal(mt, models.DefaultSiteName, setOnInsert.Lookup("site_name").StringValue())
		_, err = setOnInsert.LookupErr("description")
		assert.Error(mt, err)
	})
}
