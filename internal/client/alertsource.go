// 데모용 파일 기반 AlertSource 정의
//
// mock_alerts.json 형식의 파일에서 알림 목록을 읽어 무작위로 1건을
// 선택한다. 알림이 실제로 어떻게 생성되는지는 이 시스템의 범위 밖이며
// AlertSource는 주입 가능한 협력자 인터페이스의 한 구현일 뿐이다.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/finops-engine/backend/internal/model"
)

// FileAlertSource - JSON 파일에서 알림을 읽는 AlertSource
type FileAlertSource struct {
	path string
}

func NewFileAlertSource(path string) *FileAlertSource {
	return &FileAlertSource{path: path}
}

// NextAlert - 파일에서 알림 1건 선택
// 파일이 비어 있으면 (nil, nil)을 반환한다. "알림 없음"은 오류가 아니다.
func (s *FileAlertSource) NextAlert(ctx context.Context) (*model.Alert, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts file %s: %w", s.path, err)
	}

	var alerts []model.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to parse alerts file %s: %w", s.path, err)
	}

	if len(alerts) == 0 {
		return nil, nil
	}

	alert := alerts[rand.Intn(len(alerts))]
	return &alert, nil
}
