package storage

import (
	"context"
	"time"

	"moneta/internal/models"

	"github.com/google/uuid"
)

const userColumns = "id, username, email, display_name, password_hash, device_token, created_at"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var (
		u         models.User
		createdAt int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.PasswordHash, &u.DeviceToken, &createdAt); err != nil {
		return nil, notFound(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}

// CreateUser creates a new user with the given username and password hash.
func (q *Queries) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	id := uuid.NewString()
	_, err := q.exec(ctx,
		"INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		id, username, passwordHash, toMillis(time.Now()),
	)
	if err != nil {
		return nil, err
	}

	return q.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (q *Queries) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(q.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetUserByUsername retrieves a user by username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(q.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username))
}

// UpdateProfile overwrites the display name and email of a user.
func (q *Queries) UpdateProfile(ctx context.Context, id, displayName, email string) (bool, error) {
	res, err := q.exec(ctx, "UPDATE users SET display_name = ?, email = ? WHERE id = ?", displayName, email, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// SetDeviceToken registers the push target of a user. An empty token unregisters it.
func (q *Queries) SetDeviceToken(ctx context.Context, id, token string) (bool, error) {
	res, err := q.exec(ctx, "UPDATE users SET device_token = ? WHERE id = ?", token, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// UserCount returns the number of users in the database.
func (q *Queries) UserCount(ctx context.Context) (int, error) {
	var count int
	err := q.queryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// CreateSession creates a new session for a user.
func (q *Queries) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := q.exec(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, last_activity) VALUES (?, ?, ?, ?)",
		token, userID, toMillis(expiresAt), toMillis(time.Now()),
	)
	return err
}

// SessionInfo holds session validation data.
type SessionInfo struct {
	User         *models.User
	LastActivity time.Time
	ExpiresAt    time.Time
}

// ValidateSessionWithInfo checks if a session token is valid and returns session details.
func (q *Queries) ValidateSessionWithInfo(ctx context.Context, token string) (*SessionInfo, error) {
	row := q.queryRow(ctx, `
		SELECT u.id, u.username, u.email, u.display_name, u.password_hash, u.device_token, u.created_at,
			s.last_activity, s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = ? AND s.expires_at > ?
	`, token, toMillis(time.Now()))

	var (
		u                                  models.User
		createdAt, lastActivity, expiresAt int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.PasswordHash, &u.DeviceToken, &createdAt,
		&lastActivity, &expiresAt); err != nil {
		return nil, notFound(err)
	}
	u.CreatedAt = fromMillis(createdAt)

	return &SessionInfo{
		User:         &u,
		LastActivity: fromMillis(lastActivity),
		ExpiresAt:    fromMillis(expiresAt),
	}, nil
}

// RenewSession updates the last_activity and expires_at for a session.
func (q *Queries) RenewSession(ctx context.Context, token string, newExpiresAt time.Time) error {
	_, err := q.exec(ctx,
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		toMillis(time.Now()), toMillis(newExpiresAt), token,
	)
	return err
}

// DeleteSession removes a session by token.
func (q *Queries) DeleteSession(ctx context.Context, token string) error {
	_, err := q.exec(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// CleanExpiredSessions removes all expired sessions.
func (q *Queries) CleanExpiredSessions(ctx context.Context) (int64, error) {
	res, err := q.exec(ctx, "DELETE FROM sessions WHERE expires_at <= ?", toMillis(time.Now()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
