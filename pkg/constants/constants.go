package constants

const (
	CACHE_WORKER_NUM           = 15   // 缓存异步 Worker 数量
	CACHE_TASK_BUFFER          = 3000 // 缓存任务通道缓冲区大小
	MIN_POLL_OPTION_CNT        = 2    // 投票帖最少选项数
	MAX_POLL_OPTION_CNT        = 10   // 投票帖最多选项数
	REFRESH_TOKEN_EXPIRY_HOURS = 168  // Refresh Token 有效期（小时），168小时 = 7天
)
