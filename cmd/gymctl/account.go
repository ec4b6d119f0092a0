package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/notice"
)

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlags("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password, at least 8 characters")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, domain.Credentials{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return a.fail(err, "Registration failed")
	}
	a.notices.Show(notice.Success{Msg: "Welcome, " + resp.User.Name})
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, domain.Credentials{Email: *email, Password: *password})
	if err != nil {
		return a.fail(err, "Login failed")
	}
	a.notices.Show(notice.Success{Msg: "Signed in as " + resp.User.Email})
	return nil
}

// google exchanges a Google ID token obtained elsewhere (for example from
// the OAuth playground) for an API session.
func (a *app) google(ctx context.Context, args []string) error {
	fs := newFlags("google")
	idToken := fs.String("id-token", "", "Google ID token")
	name := fs.String("name", "", "display name hint")
	picture := fs.String("picture", "", "profile picture URL hint")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.SignInWithGoogle(ctx, domain.GoogleSignIn{IDToken: *idToken, Name: *name, ProfilePicture: *picture})
	if err != nil {
		return a.fail(err, "Google sign-in failed")
	}
	a.notices.Show(notice.Success{Msg: "Signed in as " + resp.User.Email})
	return nil
}

func (a *app) logout() error {
	if err := a.client.Logout(); err != nil {
		return a.fail(err, "Logout failed")
	}
	a.notices.Show(notice.Info{Msg: "Signed out"})
	return nil
}

func (a *app) profile(ctx context.Context) error {
	user, err := a.client.Profile(ctx)
	if err != nil {
		return a.fail(err, "Failed to load profile")
	}
	fmt.Fprintf(a.out, "ID:       %s\n", user.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", user.Name)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	if user.ProfilePicture != "" {
		fmt.Fprintf(a.out, "Picture:  %s\n", user.ProfilePicture)
	}
	fmt.Fprintf(a.out, "Joined:   %s\n", user.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *app) picture(ctx context.Context, args []string) error {
	fs := newFlags("picture")
	path := fs.String("file", "", "image file")
	contentType := fs.String("type", "", "content type (default: from the file extension)")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *path == "" {
		return errUsage
	}
	if *contentType == "" {
		*contentType = mime.TypeByExtension(filepath.Ext(*path))
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	upload, err := a.client.RequestPictureUpload(ctx, *contentType)
	if err != nil {
		return a.fail(err, "Failed to prepare picture upload")
	}
	if err := a.client.UploadPicture(ctx, upload, f, info.Size()); err != nil {
		return a.fail(err, "Failed to upload picture")
	}
	a.notices.Show(notice.Success{Msg: "Profile picture updated"})
	return nil
}
