package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics emits custom CloudWatch metrics for the proposal pipeline and
// the decay sweep. A nil client makes every method a no-op, so callers
// can hold a *Metrics unconditionally and skip a nil check at each call
// site.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics constructs a Metrics publisher. Pass a nil client to
// disable publishing (e.g. when ENABLE_METRICS is off).
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Metrics{namespace: namespace, client: client, logger: logger}
}

// RecordProposalExecution records one proposal's execution outcome and
// latency, dimensioned by agent type and action.
func (m *Metrics) RecordProposalExecution(ctx context.Context, agentType, action string, duration time.Duration, err error) {
	if m == nil || m.client == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	dims := []types.Dimension{
		{Name: aws.String("AgentType"), Value: aws.String(agentType)},
		{Name: aws.String("Action"), Value: aws.String(action)},
		{Name: aws.String("Status"), Value: aws.String(status)},
	}
	m.put(ctx,
		types.MetricDatum{
			MetricName: aws.String("ProposalExecutionLatency"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(time.Now()),
		},
		types.MetricDatum{
			MetricName: aws.String("ProposalExecutionCount"),
			Dimensions: dims,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
	)
}

// RecordDecayPass records how many nodes one decay sweep touched and
// how long it took.
func (m *Metrics) RecordDecayPass(ctx context.Context, nodeCount int, duration time.Duration, err error) {
	if m == nil || m.client == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	dims := []types.Dimension{{Name: aws.String("Status"), Value: aws.String(status)}}
	m.put(ctx,
		types.MetricDatum{
			MetricName: aws.String("DecayPassDuration"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(time.Now()),
		},
		types.MetricDatum{
			MetricName: aws.String("DecayPassNodeCount"),
			Dimensions: dims,
			Value:      aws.Float64(float64(nodeCount)),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
	)
}

func (m *Metrics) put(ctx context.Context, data ...types.MetricDatum) {
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil {
		m.logger.Warn("failed to publish cloudwatch metrics", zap.Error(err))
	}
}
