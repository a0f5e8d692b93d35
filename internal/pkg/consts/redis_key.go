package consts

const (
	UserInfoKey           = "user:info:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	PostCounterDirtyKey   = "post:counter:dirty"
	ProcessingSuffix      = ":processing"
)

const (
	PostCounterLock     = "lock:post:counter"
	PostCounterFullLock = "lock:post:counter:full"
	MediaOrphanLock     = "lock:media:orphan"
)
