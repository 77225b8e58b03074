package common

// AuthorizationHeaderName carries the bearer access token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName tags every outbound request so backend logs can be
// correlated with client logs.
const RequestIDHeaderName = "X-Request-ID"

// UploadFolder names a storage folder accepted by the uploads endpoint.
type UploadFolder string

const (
	UploadFolderRooms UploadFolder = "ROOMS"
	UploadFolderBlogs UploadFolder = "BLOGS"
)

// Valid reports whether f is one of the folders the backend accepts.
func (f UploadFolder) Valid() bool {
	return f == UploadFolderRooms || f == UploadFolderBlogs
}
