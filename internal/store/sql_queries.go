package store

const (
	createUser = `INSERT INTO users (username, email, phone_number, password_hash, role)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, username, email, phone_number, password_hash, role, disabled, created_at, last_login;`

	findUserByUsername = `SELECT id, username, email, phone_number, password_hash, role, disabled, created_at, last_login
    FROM users
    WHERE username = $1;`

	getUserByID = `SELECT id, username, email, phone_number, password_hash, role, disabled, created_at, last_login
    FROM users
    WHERE id = $1;`

	touchLastLogin = `UPDATE users
    SET last_login = $2
    WHERE id = $1;`

	updateUserEmail = `UPDATE users
    SET email = $2
    WHERE id = $1;`

	createRule = `INSERT INTO rules (user_id, name, enabled, priority, action, match_type, pattern, category, score)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id, user_id, name, enabled, priority, action, match_type, pattern, category, score, created_at;`

	getRule = `SELECT id, user_id, name, enabled, priority, action, match_type, pattern, category, score, created_at
    FROM rules
    WHERE user_id = $1 AND id = $2;`

	deleteRule = `DELETE FROM rules
    WHERE user_id = $1 AND id = $2;`

	saveEvent = `INSERT INTO threat_events (correlation_id, url, protocol, host, path, status, occurred_at, action_taken, score, category, device_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    RETURNING id;`

	listEventsByDevice = `SELECT id, correlation_id, url, protocol, host, path, status, occurred_at, action_taken, score, category, device_id
    FROM threat_events
    WHERE device_id = $1
    ORDER BY occurred_at DESC
    LIMIT $2;`

	createSettings = `INSERT INTO user_settings (user_id, always_on_top, allow_notifications, theme, run_at_startup)
    VALUES ($1, $2, $3, $4, $5);`

	getSettings = `SELECT user_id, always_on_top, allow_notifications, theme, run_at_startup
    FROM user_settings
    WHERE user_id = $1;`
)
