package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Tracking codes look like ECR-2025-0042; the prefix is the only
	// configurable part, the rest comes from the database function.
	TrackingPrefix string `envconfig:"TRACKING_PREFIX" default:"ECR"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Supabase Storage (report evidence media)
	SupabaseProjectID  string `envconfig:"SUPABASE_PROJECT_ID"`
	SupabaseAPIKey     string `envconfig:"SUPABASE_API_KEY"`
	MediaBucketName    string `envconfig:"MEDIA_BUCKET_NAME" default:"report-media"`
	MediaMaxUploadMB   int64  `envconfig:"MEDIA_MAX_UPLOAD_MB" default:"10"`
	MediaMaxAttachment int    `envconfig:"MEDIA_MAX_ATTACHMENTS" default:"5"`

	// S3 (profile avatars)
	S3BucketName string `envconfig:"S3_BUCKET_NAME"`

	// Notifications
	EmailAPIURL   string `envconfig:"EMAIL_API_URL" default:"https://api.sendgrid.com/v3/mail/send"`
	EmailAPIKey   string `envconfig:"EMAIL_API_KEY"`
	EmailFrom     string `envconfig:"EMAIL_FROM" default:"noreply@ecsrs.gov.ng"`
	SMSAccountSID string `envconfig:"SMS_ACCOUNT_SID"`
	SMSAuthToken  string `envconfig:"SMS_AUTH_TOKEN"`
	SMSFromNumber string `envconfig:"SMS_FROM_NUMBER"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
