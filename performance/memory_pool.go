package performance

import (
	"strings"
	"sync"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/models"
)

var (
	// RecordSlicePool 표시용 레코드 슬라이스 풀
	RecordSlicePool = sync.Pool{
		New: func() interface{} {
			slice := make([]models.DisplayRecord, 0, 50)
			return &slice
		},
	}

	// SemaphoreChanPool 세마포어 채널 풀
	SemaphoreChanPool = sync.Pool{
		New: func() interface{} {
			ch := make(chan struct{}, constants.AdaptiveConcurrencyMaxLimit)
			return ch
		},
	}

	// StringBuilderPool 문자열 빌더 풀 (스코어보드 메시지 생성용)
	StringBuilderPool = sync.Pool{
		New: func() interface{} {
			return &strings.Builder{}
		},
	}
)

// GetRecordSlice 재사용 가능한 레코드 슬라이스를 가져옵니다
func GetRecordSlice() *[]models.DisplayRecord {
	slice := RecordSlicePool.Get().(*[]models.DisplayRecord)
	*slice = (*slice)[:0]
	return slice
}

// PutRecordSlice 레코드 슬라이스를 풀에 반환합니다
func PutRecordSlice(slice *[]models.DisplayRecord) {
	// 메모리 누수 방지를 위해 큰 슬라이스는 풀에 반환하지 않음
	if cap(*slice) <= constants.MaxPoolSliceCapacity {
		RecordSlicePool.Put(slice)
	}
}

// GetSemaphoreChannel 동시에 size개의 토큰만 허용하는 세마포어 채널을 가져옵니다.
// 풀 채널의 용량은 고정이므로 남는 슬롯을 미리 채워 실효 용량을 size로 맞춥니다.
func GetSemaphoreChannel(size int) chan struct{} {
	if size > constants.MaxPoolSemaphoreSize {
		// 큰 세마포어가 필요하면 새로 생성
		return make(chan struct{}, size)
	}

	ch := SemaphoreChanPool.Get().(chan struct{})
	drainChannel(ch)
	for i := 0; i < cap(ch)-size; i++ {
		ch <- struct{}{}
	}
	return ch
}

// PutSemaphoreChannel 세마포어 채널을 풀에 반환합니다
func PutSemaphoreChannel(ch chan struct{}) {
	if cap(ch) <= constants.MaxPoolSemaphoreSize {
		drainChannel(ch)
		SemaphoreChanPool.Put(ch)
	}
}

func drainChannel(ch chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// GetStringBuilder 재사용 가능한 문자열 빌더를 가져옵니다
func GetStringBuilder() *strings.Builder {
	sb := StringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// PutStringBuilder 문자열 빌더를 풀에 반환합니다
func PutStringBuilder(sb *strings.Builder) {
	// 너무 큰 빌더는 풀에 반환하지 않음
	if sb.Cap() <= constants.MaxStringBuilderSize {
		StringBuilderPool.Put(sb)
	}
}
