package kali

import "testing"

// Entities shared by the tests. Column names are given explicitly so the
// tests do not depend on DefaultColumnNamer.
type (
	testUser struct {
		ID       int64  `column:"id" yaml:"id"`
		Username string `column:"username" yaml:"username"`
	}

	testProfile struct {
		UserID int64  `column:"user_id,pk" yaml:"user_id"`
		Bio    string `column:"bio" yaml:"bio"`
	}

	testPost struct {
		ID      int64  `column:"id" yaml:"id"`
		Content string `column:"content" yaml:"content"`
		UserID  int64  `column:"user_id" yaml:"user_id"`
		Title   string `column:"title" yaml:"title"`
	}

	// userColumn is a hand-written column enumeration of the users table.
	userColumn string
)

func (c userColumn) ColumnName() string { return string(c) }

const (
	userID       userColumn = "id"
	userUsername userColumn = "username"
)

var (
	testUsers    = NewModel[testUser](TableName("users"))
	testProfiles = NewModel[testProfile](TableName("user_profiles"))
	testPosts    = NewModel[testPost](TableName("posts"))

	profileUser = BelongsTo(testProfiles, "user_id", testUsers)
	postUser    = BelongsTo(testPosts, "user_id", testUsers, "id")
)

func (u testUser) Profile() Reference[testProfile] { return profileUser.Inverse(u) }
func (u testUser) Posts() Collection[testPost]     { return postUser.Collection(u) }
func (p testProfile) User() Reference[testUser]    { return profileUser.Reference(p) }
func (p testPost) User() Reference[testUser]       { return postUser.Reference(p) }

func mustPanicUsage(t testing.TB, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected panic")
			return
		}
		if !IsUsageError(r) {
			t.Errorf("expected *UsageError, got %T: %v", r, r)
		}
	}()
	f()
}
