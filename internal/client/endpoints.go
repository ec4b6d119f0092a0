package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/session"
)

// --- Availability ---

func (c *Client) ListAvailability(ctx context.Context) ([]domain.Availability, error) {
	var out []domain.Availability
	if err := c.get(ctx, "/availability", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAvailabilityRange returns windows with startDate <= date <= endDate (YYYY-MM-DD).
func (c *Client) ListAvailabilityRange(ctx context.Context, startDate, endDate string) ([]domain.Availability, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var out []domain.Availability
	if err := c.get(ctx, "/availability?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAvailability(ctx context.Context, in domain.AvailabilityInput) (*domain.Availability, error) {
	var out domain.Availability
	if err := c.post(ctx, "/availability", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAvailability(ctx context.Context, id string, patch domain.AvailabilityPatch) (*domain.Availability, error) {
	var out domain.Availability
	if err := c.patch(ctx, "/availability/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAvailability(ctx context.Context, id string) error {
	return c.delete(ctx, "/availability/"+url.PathEscape(id))
}

// --- Booking ---

func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "/booking", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListBookingsByAvailability(ctx context.Context, availabilityID string) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "/booking/availability/"+url.PathEscape(availabilityID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	var out domain.Booking
	if err := c.post(ctx, "/booking", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	var out domain.Booking
	if err := c.patch(ctx, "/booking/"+url.PathEscape(id)+"/status", domain.StatusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.delete(ctx, "/booking/"+url.PathEscape(id))
}

// --- Workout plans ---

func (c *Client) ListWorkoutPlans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	var out []domain.WorkoutPlan
	if err := c.get(ctx, "/workouts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateWorkoutPlan(ctx context.Context, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := c.post(ctx, "/workouts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWorkoutPlan(ctx context.Context, id string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := c.patch(ctx, "/workouts/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWorkoutPlan(ctx context.Context, id string) error {
	return c.delete(ctx, "/workouts/"+url.PathEscape(id))
}

// --- Auth & profile ---

// VerifyGoogle exchanges an identity-provider token for an API token.
func (c *Client) VerifyGoogle(ctx context.Context, in domain.GoogleSignIn) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.post(ctx, "/auth/google/verify", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignInWithGoogle verifies the token and persists the resulting session.
func (c *Client) SignInWithGoogle(ctx context.Context, in domain.GoogleSignIn) (*domain.AuthResponse, error) {
	resp, err := c.VerifyGoogle(ctx, in)
	if err != nil {
		return nil, err
	}
	return resp, c.persist(resp)
}

// Register creates an email/password account and signs it in.
func (c *Client) Register(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.post(ctx, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, c.persist(&out)
}

// Login signs in an email/password account.
func (c *Client) Login(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.post(ctx, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, c.persist(&out)
}

// Logout forgets the local session. The API keeps no server-side session.
func (c *Client) Logout() error {
	return session.Clear(c.session)
}

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/users/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPictureUpload asks for a presigned URL to PUT a new profile picture to.
func (c *Client) RequestPictureUpload(ctx context.Context, contentType string) (*domain.PictureUpload, error) {
	var out domain.PictureUpload
	body := map[string]string{"contentType": contentType}
	if err := c.post(ctx, "/users/profile/picture", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPicture PUTs an image to a presigned URL. The URL carries its own
// signature, so no bearer token is sent.
func (c *Client) UploadPicture(ctx context.Context, upload *domain.PictureUpload, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, upload.UploadURL, body)
	if err != nil {
		return &Error{Kind: KindHTTP, Message: MsgUnexpected, Err: err}
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", upload.ContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Kind: KindHTTP, Status: resp.StatusCode, Message: "Failed to upload picture"}
	}
	return nil
}

func (c *Client) persist(resp *domain.AuthResponse) error {
	if err := c.session.SaveToken(resp.AccessToken); err != nil {
		return err
	}
	return c.session.SaveUser(resp.User)
}
