package stock

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	chartMocks "liyu1981.xyz/machine-stock/pkg/chart/mocks"
	storeMocks "liyu1981.xyz/machine-stock/pkg/persistence/mocks"
	"liyu1981.xyz/machine-stock/pkg/stock/mocks"
)

func GetMockStock(t *testing.T) (
	*gomock.Controller,
	*Stock,
	*storeMocks.MockStore,
	*mocks.MockNotifier,
	*chartMocks.MockSink,
) {
	ctrl := gomock.NewController(t)

	mockStore := storeMocks.NewMockStore(ctrl)
	mockNotifier := mocks.NewMockNotifier(ctrl)
	mockSink := chartMocks.NewMockSink(ctrl)

	s := New(nil).WithServices(ServiceOpts{
		Store:    mockStore,
		Notifier: mockNotifier,
	})

	return ctrl, s, mockStore, mockNotifier, mockSink
}

func ParseLogs(r io.Reader) []map[string]any {
	scanner := bufio.NewScanner(r)
	var logs []map[string]any

	for scanner.Scan() {
		var j map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
