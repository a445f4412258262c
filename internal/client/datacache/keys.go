package datacache

const (
	KeyMeta     = "meta"
	KeyUser     = "user"
	KeySettings = "settings"
	KeyFolders  = "folders"
)

func QueryKey(name string) string { return "query-" + name }

func MessagesKey(folderID string) string { return "messages-" + folderID }

func UploadKey(fileID string) string { return "uploadingFile-" + fileID }

func FileKey(fileID string) string { return "file-" + fileID }
