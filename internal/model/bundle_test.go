package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchoolDataDefaults(t *testing.T) {
	d := NewSchoolData("", "")
	assert.Equal(t, "School ERP", d.SchoolProfile.Name)
	assert.Equal(t, "Please set in settings", d.SchoolProfile.Address)

	d = NewSchoolData("Oak Valley Academy", "789 Academy Rd")
	assert.Equal(t, "Oak Valley Academy", d.SchoolProfile.Name)
	assert.Equal(t, "789 Academy Rd", d.SchoolProfile.Address)
}

func TestNewSchoolDataSerializesEmptyCollections(t *testing.T) {
	// Collections must encode as [] rather than null so clients can iterate
	// a fresh bundle without nil checks.
	data, err := json.Marshal(NewSchoolData("X", "Y"))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range CollectionKeys {
		assert.JSONEq(t, "[]", string(decoded[string(key)]), "collection %s", key)
	}
}

func TestCollectionUnknownKey(t *testing.T) {
	d := NewSchoolData("", "")

	records, ok := d.Collection(CollectionKey("bogus"))
	assert.False(t, ok)
	assert.JSONEq(t, "[]", string(records))
}

func TestSetCollectionRoundTrip(t *testing.T) {
	d := NewSchoolData("", "")

	payload := `[{"id":1,"name":"Class 10","sections":["A","B"]}]`
	require.NoError(t, d.SetCollection(KeyClasses, json.RawMessage(payload)))
	require.Len(t, d.Classes, 1)
	assert.Equal(t, "Class 10", d.Classes[0].Name)

	records, ok := d.Collection(KeyClasses)
	require.True(t, ok)
	var got []ClassInfo
	require.NoError(t, json.Unmarshal(records, &got))
	assert.Equal(t, d.Classes, got)
}

func TestSetCollectionNullBecomesEmpty(t *testing.T) {
	d := NewSchoolData("", "")
	d.Students = []Student{{ID: 1, Name: "Alice"}}

	require.NoError(t, d.SetCollection(KeyStudents, json.RawMessage("null")))
	assert.NotNil(t, d.Students)
	assert.Empty(t, d.Students)
}

func TestSetCollectionRejectsUnknownKey(t *testing.T) {
	d := NewSchoolData("", "")
	err := d.SetCollection(CollectionKey("bogus"), json.RawMessage("[]"))
	assert.Error(t, err)
}

func TestSetCollectionAtomicOnDecodeError(t *testing.T) {
	d := NewSchoolData("", "")
	d.Teachers = []Teacher{{ID: 1, Name: "Mr. John Doe"}}

	err := d.SetCollection(KeyTeachers, json.RawMessage(`[{"id": "not a number"}]`))
	require.Error(t, err)
	require.Len(t, d.Teachers, 1, "failed decode must leave the collection untouched")
	assert.Equal(t, "Mr. John Doe", d.Teachers[0].Name)
}

func TestValidCollectionKey(t *testing.T) {
	for _, key := range CollectionKeys {
		assert.True(t, ValidCollectionKey(key))
	}
	assert.False(t, ValidCollectionKey("schoolProfile"), "the profile is a singleton, not a collection")
	assert.False(t, ValidCollectionKey(""))
}

func TestSchoolSanitized(t *testing.T) {
	sc := School{ID: 1, Name: "Springfield", LoginID: "spr", Password: "$2a$10$hash"}
	clean := sc.Sanitized()
	assert.Empty(t, clean.Password)
	assert.Equal(t, "$2a$10$hash", sc.Password, "sanitizing must not mutate the original")

	data, err := json.Marshal(clean)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}

func TestSnapshotValid(t *testing.T) {
	valid := &Snapshot{
		SuperAdmin: SuperAdmin{Username: "superadmin", Password: "x"},
		Schools:    []School{},
		SchoolData: map[string]*SchoolData{},
	}
	assert.True(t, valid.Valid())

	assert.False(t, (&Snapshot{}).Valid())
	assert.False(t, (&Snapshot{
		SuperAdmin: SuperAdmin{Username: "superadmin"},
		Schools:    []School{},
	}).Valid(), "missing schoolData map")
	assert.False(t, (&Snapshot{
		Schools:    []School{},
		SchoolData: map[string]*SchoolData{},
	}).Valid(), "missing operator credential")
}
