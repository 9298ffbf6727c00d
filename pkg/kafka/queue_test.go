package kafka

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
)

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev NoticeEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		require.Equal(t, "0001", ev.ManageID)
		require.Equal(t, "a@co.com", ev.To)
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	q := NewEnqueuer(producer)
	require.NoError(t, q.Enqueue(OverdueNoticeTopic, "0001", NoticeEvent{ManageID: "0001", To: "a@co.com"}))
	require.Error(t, q.Enqueue(OverdueNoticeTopic, "0002", NoticeEvent{ManageID: "0002"}))
	require.NoError(t, producer.Close())
}
