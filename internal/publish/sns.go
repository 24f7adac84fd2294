package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	awsclient "marketplace-datagen/internal/common/aws"
)

// RunNotice is the SNS message body announcing a refreshed corpus.
type RunNotice struct {
	RunID            string  `json:"runId"`
	GeneratedAt      string  `json:"generatedAt"`
	RFQs             int     `json:"rfqs"`
	Suppliers        int     `json:"suppliers"`
	Categories       int     `json:"categories"`
	BudgetTotal      string  `json:"budgetTotal"`
	ActivePercentage float64 `json:"activePercentage"`
}

// SNSNotifier publishes a RunNotice; it never ships the records themselves.
type SNSNotifier struct {
	client   awsclient.SNSPublisher
	topicARN string
}

func NewSNSNotifier(client awsclient.SNSPublisher, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

func (n *SNSNotifier) Name() string { return "sns" }

func (n *SNSNotifier) Publish(ctx context.Context, snap Snapshot) error {
	notice := RunNotice{
		RunID:            snap.RunID,
		GeneratedAt:      snap.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		RFQs:             len(snap.RFQs),
		Suppliers:        len(snap.Suppliers),
		Categories:       snap.Summary.Categories,
		BudgetTotal:      snap.Summary.BudgetTotal,
		ActivePercentage: snap.Summary.ActivePercentage,
	}
	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String("Marketplace corpus refreshed"),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"runId": {DataType: aws.String("String"), StringValue: aws.String(snap.RunID)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
