package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forbiddenBody = `{"error":"You are not authorized to perform this action."}`

func seedRecord(t *testing.T, f *fixture) (*domain.User, *domain.User, *domain.UserKanji) {
	t.Helper()
	owner := testutil.CreateUser(t, f.db, "taro")
	other := testutil.CreateUser(t, f.db, "hanako")
	k := testutil.CreateKanji(t, f.db, "水", "water")
	return owner, other, testutil.CreateUserKanji(t, f.db, owner.ID, k.ID, nil)
}

func TestUserKanjiShow(t *testing.T) {
	f := newFixture(t)
	owner, other, uk := seedRecord(t, f)

	w := f.do(http.MethodGet, ukPath(uk), "", owner)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.UserKanji
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uk.ID, got.ID)
	assert.Equal(t, owner.ID, got.UserID)
	assert.Nil(t, got.LastReviewedAt)
	require.NotNil(t, got.Kanji)
	assert.Equal(t, "水", got.Kanji.Character)

	w = f.do(http.MethodGet, ukPath(uk), "", other)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, forbiddenBody, w.Body.String())
}

func TestUserKanjiShow_NotFound(t *testing.T) {
	f := newFixture(t)
	owner, _, _ := seedRecord(t, f)

	for _, path := range []string{"/user_kanjis/9999", "/user_kanjis/abc", "/user_kanjis/0"} {
		w := f.do(http.MethodGet, path, "", owner)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, `{"error":"UserKanji not found"}`, w.Body.String())
	}
}

func TestUserKanjiUpdate(t *testing.T) {
	f := newFixture(t)
	owner, _, uk := seedRecord(t, f)

	w := f.do(http.MethodPatch, ukPath(uk), `{"last_reviewed_at":"2025-07-28T04:45:49+09:00"}`, owner)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.UserKanji
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, time.Date(2025, 7, 27, 19, 45, 49, 0, time.UTC).Equal(*got.LastReviewedAt))

	var stored domain.UserKanji
	require.NoError(t, f.db.First(&stored, uk.ID).Error)
	require.NotNil(t, stored.LastReviewedAt)
	assert.True(t, got.LastReviewedAt.Equal(*stored.LastReviewedAt))
}

func TestUserKanjiUpdate_Idempotent(t *testing.T) {
	f := newFixture(t)
	owner, _, uk := seedRecord(t, f)
	body := `{"last_reviewed_at":"2025-07-27T19:45:49Z"}`

	first := f.do(http.MethodPatch, ukPath(uk), body, owner)
	require.Equal(t, http.StatusOK, first.Code)

	var afterFirst domain.UserKanji
	require.NoError(t, f.db.First(&afterFirst, uk.ID).Error)

	second := f.do(http.MethodPut, ukPath(uk), body, owner)
	require.Equal(t, http.StatusOK, second.Code)

	var afterSecond domain.UserKanji
	require.NoError(t, f.db.First(&afterSecond, uk.ID).Error)
	assert.True(t, afterFirst.LastReviewedAt.Equal(*afterSecond.LastReviewedAt))
	assert.True(t, afterFirst.UpdatedAt.Equal(afterSecond.UpdatedAt))

	var resp domain.UserKanji
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, afterFirst.LastReviewedAt.Equal(*resp.LastReviewedAt))
}

func TestUserKanjiUpdate_WrappedAndClear(t *testing.T) {
	f := newFixture(t)
	owner, _, uk := seedRecord(t, f)

	w := f.do(http.MethodPatch, ukPath(uk), `{"user_kanji":{"last_reviewed_at":"2025-07-27T19:45:49.5Z"}}`, owner)
	require.Equal(t, http.StatusOK, w.Code)

	var stored domain.UserKanji
	require.NoError(t, f.db.First(&stored, uk.ID).Error)
	require.NotNil(t, stored.LastReviewedAt)

	w = f.do(http.MethodPatch, ukPath(uk), `{"last_reviewed_at":null}`, owner)
	require.Equal(t, http.StatusOK, w.Code)

	stored = domain.UserKanji{}
	require.NoError(t, f.db.First(&stored, uk.ID).Error)
	assert.Nil(t, stored.LastReviewedAt)
}

func TestUserKanjiUpdate_IgnoresOtherFields(t *testing.T) {
	f := newFixture(t)
	owner, other, uk := seedRecord(t, f)

	body := `{"user_id":` + jsonNumber(other.ID) + `,"kanji_id":999,"last_reviewed_at":"2025-07-27T19:45:49Z"}`
	w := f.do(http.MethodPatch, ukPath(uk), body, owner)
	require.Equal(t, http.StatusOK, w.Code)

	var stored domain.UserKanji
	require.NoError(t, f.db.First(&stored, uk.ID).Error)
	assert.Equal(t, owner.ID, stored.UserID)
	assert.Equal(t, uk.KanjiID, stored.KanjiID)
}

func TestUserKanjiUpdate_ValidationError(t *testing.T) {
	f := newFixture(t)
	owner, _, uk := seedRecord(t, f)

	for _, body := range []string{
		`{"last_reviewed_at":"yesterday"}`,
		`{"last_reviewed_at":"2025-13-45T99:00:00Z"}`,
		`{"last_reviewed_at":12345}`,
	} {
		w := f.do(http.MethodPatch, ukPath(uk), body, owner)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)

		var payload struct {
			Errors []common.FieldError `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		require.Len(t, payload.Errors, 1)
		assert.Equal(t, "last_reviewed_at", payload.Errors[0].Field)
	}

	var stored domain.UserKanji
	require.NoError(t, f.db.First(&stored, uk.ID).Error)
	assert.Nil(t, stored.LastReviewedAt)
}

func TestUserKanjiUpdate_MalformedJSON(t *testing.T) {
	f := newFixture(t)
	owner, _, uk := seedRecord(t, f)

	w := f.do(http.MethodPatch, ukPath(uk), `{"last_reviewed_at":`, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserKanjiUpdate_ForbiddenRegardlessOfPayload(t *testing.T) {
	f := newFixture(t)
	_, other, uk := seedRecord(t, f)

	for _, body := range []string{
		`{"last_reviewed_at":"2025-07-27T19:45:49Z"}`,
		`{"last_reviewed_at":"not a time"}`,
		`{"last_reviewed_at":`,
	} {
		w := f.do(http.MethodPatch, ukPath(uk), body, other)
		assert.Equal(t, http.StatusForbidden, w.Code, body)
		assert.Equal(t, forbiddenBody, w.Body.String())
	}

	var stored domain.UserKanji
	require.NoError(t, f.db.First(&stored, uk.ID).Error)
	assert.Nil(t, stored.LastReviewedAt)
}

func TestUserKanjiUpdate_NotFound(t *testing.T) {
	f := newFixture(t)
	owner, _, _ := seedRecord(t, f)

	w := f.do(http.MethodPatch, "/user_kanjis/9999", `{"last_reviewed_at":"bad"}`, owner)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseUserKanjiPatch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSet bool
		wantNil bool
		wantErr bool
	}{
		{"empty body", "", false, true, false},
		{"no key", `{}`, false, true, false},
		{"null", `{"last_reviewed_at":null}`, true, true, false},
		{"blank string", `{"last_reviewed_at":""}`, true, true, false},
		{"timestamp", `{"last_reviewed_at":"2025-07-27T19:45:49Z"}`, true, false, false},
		{"wrapped", `{"user_kanji":{"last_reviewed_at":"2025-07-27T19:45:49Z"}}`, true, false, false},
		{"wrapper not object", `{"user_kanji":"x"}`, false, true, true},
		{"date only", `{"last_reviewed_at":"2025-07-27"}`, true, true, true},
		{"array body", `[1]`, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := parseUserKanjiPatch(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, patch.Set)
			assert.Equal(t, tt.wantNil, patch.LastReviewedAt == nil)
		})
	}
}

func jsonNumber(v uint64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestParseUserKanjiPatch_ValidatorFieldErrors(t *testing.T) {
	_, err := parseUserKanjiPatch(strings.NewReader(`{"last_reviewed_at":"2025-07-27 19:45"}`))

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, common.FieldError{Field: "last_reviewed_at", Message: "is not a valid RFC 3339 timestamp"}, verr.Fields[0])
}

func TestToValidationError(t *testing.T) {
	err := patchValidator.Struct(lastReviewedAtInput{LastReviewedAt: "tomorrow"})
	require.Error(t, err)

	var verr *common.ValidationError
	require.ErrorAs(t, toValidationError(err), &verr)
	assert.Equal(t, "last_reviewed_at", verr.Fields[0].Field)
	assert.ErrorIs(t, verr, common.ErrInvalidInput)

	assert.NoError(t, patchValidator.Struct(lastReviewedAtInput{LastReviewedAt: "2025-07-27T19:45:49+09:00"}))
}
