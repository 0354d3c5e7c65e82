package employee

import "time"

func SetPublishTimeout(svc Service, d time.Duration) {
	svc.(*service).publishTimeout = d
}
