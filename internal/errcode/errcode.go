package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误
// - 5xxx：系统错误（需要中断流程）
// 通知推送与前端按这些码区分失败类别，不要混用。
const (
	OK            = 0
	NotFound      = 4004
	SystemError   = 5000
	CaptureFailed = 5001 // 画面截取得到零尺寸图像等
	UploadFailed  = 5002 // 制品上传或记录写入失败
)
