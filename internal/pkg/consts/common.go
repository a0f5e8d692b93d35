package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
)

// canal 事件类型
const (
	CanalInsert = "INSERT"
	CanalUpdate = "UPDATE"
	CanalDelete = "DELETE"
)

const (
	// MediaObjectPrefix 上传媒体在桶内的目录
	MediaObjectPrefix = "media/"
)
