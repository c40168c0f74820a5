package internal

const (
	COOKIE_ACCESS_TOKEN_NAME  = "ecsrs_access_token"
	COOKIE_REFRESH_TOKEN_NAME = "ecsrs_refresh_token"
)
