package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"github.com/myshopee/backend/internal/aws"
)

const namespace = "MyShopee/OrderAdvancer"

// CloudWatchSink publishes per-pass advancer counters as custom metrics.
type CloudWatchSink struct {
	client aws.CloudWatchAPI
	log    *zap.Logger
}

// NewCloudWatchSink returns a sink publishing under the MyShopee/OrderAdvancer namespace.
func NewCloudWatchSink(client aws.CloudWatchAPI, log *zap.Logger) *CloudWatchSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &CloudWatchSink{client: client, log: log}
}

// RecordPass emits OrdersAdvanced and OrdersFailed for one transition pass.
// Emission failures are logged and swallowed; metrics never fail a pass.
func (s *CloudWatchSink) RecordPass(ctx context.Context, from, to string, advanced, failed int) {
	now := time.Now()
	dims := []cwtypes.Dimension{
		{Name: awsString("FromStatus"), Value: &from},
		{Name: awsString("ToStatus"), Value: &to},
	}
	data := []cwtypes.MetricDatum{
		{
			MetricName: awsString("OrdersAdvanced"),
			Timestamp:  &now,
			Value:      float64Ptr(float64(advanced)),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: dims,
		},
		{
			MetricName: awsString("OrdersFailed"),
			Timestamp:  &now,
			Value:      float64Ptr(float64(failed)),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: dims,
		},
	}

	_, err := s.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  awsString(namespace),
		MetricData: data,
	})
	if err != nil {
		s.log.Warn("put metric data failed", zap.Error(err))
	}
}

func awsString(s string) *string   { return &s }
func float64Ptr(f float64) *float64 { return &f }
