package cms_test

import (
	"context"
	"testing"

	"renonx-go/internal/cms"
	"renonx-go/internal/testutil"
)

func TestContentStore_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("correct credentials establish a session", func(t *testing.T) {
		ts := testutil.NewTestStore(t)

		user, err := ts.Store.Login(ctx, "admin@renonx.com", "password123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if user == nil {
			t.Fatal("Login() = nil, want session")
		}
		got := ts.Store.GetUser()
		if got == nil || *got != *user {
			t.Errorf("GetUser() = %+v, want %+v", got, user)
		}
		if !hasLog(ts.Store.GetLogs(), cms.LevelSuccess, "Identity verified: admin session established") {
			t.Error("journal missing SUCCESS login entry")
		}
	})

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "admin@renonx.com", "password"},
		{"wrong email", "root@renonx.com", "password123"},
		{"case differs", "Admin@renonx.com", "password123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name+" while signed out", func(t *testing.T) {
			ts := testutil.NewTestStore(t)

			user, err := ts.Store.Login(ctx, tt.email, tt.password)
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if user != nil {
				t.Errorf("Login() = %+v, want nil", user)
			}
			if ts.Store.GetUser() != nil {
				t.Error("GetUser() should stay nil")
			}
			if latest := ts.Store.GetLogs()[0]; latest.Level != cms.LevelError {
				t.Errorf("latest journal entry = %+v, want ERROR", latest)
			}
		})

		t.Run(tt.name+" while signed in", func(t *testing.T) {
			ts := testutil.NewTestStore(t)
			ts.Store.Login(ctx, "admin@renonx.com", "password123")
			before := ts.Store.GetUser()

			if user, _ := ts.Store.Login(ctx, tt.email, tt.password); user != nil {
				t.Errorf("Login() = %+v, want nil", user)
			}
			after := ts.Store.GetUser()
			if after == nil || *after != *before {
				t.Errorf("GetUser() = %+v, want unchanged %+v", after, before)
			}
		})
	}
}

func TestContentStore_Logout(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestStore(t)

	if _, err := ts.Store.Login(ctx, "admin@renonx.com", "password123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := ts.Store.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if ts.Store.GetUser() != nil {
		t.Error("GetUser() after Logout should be nil")
	}

	raw, _ := ts.KV.Get(ctx, cms.KeyUser)
	if raw != nil {
		t.Errorf("session slot still holds %q", raw)
	}
	if !hasLog(ts.Store.GetLogs(), cms.LevelInfo, "Session terminated") {
		t.Error("journal missing logout entry")
	}
}

func TestContentStore_LoginPersistFailure(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestStoreWith(t, testutil.FailingKeyValue{}, nil, nil)

	user, err := ts.Store.Login(ctx, "admin@renonx.com", "password123")
	if err == nil {
		t.Fatal("Login() expected error when the session cannot be stored")
	}
	if user != nil || ts.Store.GetUser() != nil {
		t.Error("session established despite storage failure")
	}
}
