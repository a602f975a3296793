package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultRequestsTableName      = "requests"
	defaultPaymentOrdersTableName = "payment_orders"
	requestsUserIDIndex           = "user_id-index"
	paymentOrdersPaymentIDIndex   = "payment_id-index"
)

var ErrRequestAlreadyExists = errors.New("request already exists")

type statusHistoryItem struct {
	Status    string `dynamodbav:"status"`
	Notes     string `dynamodbav:"notes"`
	UpdatedBy string `dynamodbav:"updated_by"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

type paymentAttemptItem struct {
	PaymentID        string `dynamodbav:"payment_id"`
	GatewayOrderID   string `dynamodbav:"gateway_order_id"`
	Amount           int64  `dynamodbav:"amount"`
	Currency         string `dynamodbav:"currency"`
	Kind             string `dynamodbav:"kind"`
	Status           string `dynamodbav:"status"`
	GatewayPaymentID string `dynamodbav:"gateway_payment_id,omitempty"`
	GatewaySignature string `dynamodbav:"gateway_signature,omitempty"`
	FailureReason    string `dynamodbav:"failure_reason,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
	PaidAt           string `dynamodbav:"paid_at,omitempty"`
	ClosedAt         string `dynamodbav:"closed_at,omitempty"`
}

type requestItem struct {
	ID            string                  `dynamodbav:"id"`
	Type          string                  `dynamodbav:"type"`
	ProjectID     string                  `dynamodbav:"project_id,omitempty"`
	ProjectName   string                  `dynamodbav:"project_name"`
	CustomProject *entities.CustomProject `dynamodbav:"custom_project,omitempty"`

	ClientType string              `dynamodbav:"client_type"`
	UserID     string              `dynamodbav:"user_id,omitempty"`
	GuestInfo  *entities.GuestInfo `dynamodbav:"guest_info,omitempty"`

	Status             string `dynamodbav:"status"`
	AdminNotes         string `dynamodbav:"admin_notes,omitempty"`
	CurrentModule      string `dynamodbav:"current_module,omitempty"`
	GithubLink         string `dynamodbav:"github_link,omitempty"`
	ExpectedCompletion string `dynamodbav:"expected_completion,omitempty"`

	EstimatedPrice  int64  `dynamodbav:"estimated_price"`
	ActualPrice     int64  `dynamodbav:"actual_price"`
	PaymentOption   string `dynamodbav:"payment_option"`
	TotalAmount     int64  `dynamodbav:"total_amount"`
	AdvanceAmount   int64  `dynamodbav:"advance_amount"`
	RemainingAmount int64  `dynamodbav:"remaining_amount"`
	PaymentStatus   string `dynamodbav:"payment_status"`

	Payments      []paymentAttemptItem `dynamodbav:"payments"`
	StatusHistory []statusHistoryItem  `dynamodbav:"status_history"`
	// PendingPayments counts pending attempts; absent when zero so the expiry
	// sweep scans a sparse attribute.
	PendingPayments int `dynamodbav:"pending_payments,omitempty"`

	ApprovalEmailSent bool   `dynamodbav:"approval_email_sent"`
	ApprovedAt        string `dynamodbav:"approved_at,omitempty"`
	CompletedAt       string `dynamodbav:"completed_at,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
	Version           int64  `dynamodbav:"version"`
}

type paymentOrderItem struct {
	GatewayOrderID string `dynamodbav:"gateway_order_id"`
	PaymentID      string `dynamodbav:"payment_id"`
	RequestID      string `dynamodbav:"request_id"`
}

// RequestDynamoRepository persists Request aggregates in DynamoDB.
//
// Table requirements:
//   - requests: PK id (string); GSI user_id-index (PK user_id)
//   - payment_orders: PK gateway_order_id (string); GSI payment_id-index (PK payment_id)
//
// The request document and the order index entries of its pending attempts
// are written in one transaction, guarded by the request version.
type RequestDynamoRepository struct {
	ddb         dynamoAPI
	tableName   string
	ordersTable string
}

var _ interfaces.IRequestRepository = (*RequestDynamoRepository)(nil)

func NewRequestDynamoRepository(ddb dynamoAPI, tables Tables) *RequestDynamoRepository {
	r := &RequestDynamoRepository{
		ddb:         ddb,
		tableName:   tables.Requests,
		ordersTable: tables.PaymentOrders,
	}
	if r.tableName == "" {
		r.tableName = defaultRequestsTableName
	}
	if r.ordersTable == "" {
		r.ordersTable = defaultPaymentOrdersTableName
	}
	return r
}

func (r *RequestDynamoRepository) Create(ctx context.Context, req entities.Request) (entities.Request, error) {
	req.Version = 1
	err := r.write(ctx, req, "attribute_not_exists(#id)", map[string]string{"#id": "id"}, nil)
	if err != nil {
		if errors.Is(err, interfaces.ErrConcurrentUpdate) {
			return entities.Request{}, fmt.Errorf("%w: %s", ErrRequestAlreadyExists, req.ID)
		}
		return entities.Request{}, err
	}
	return req, nil
}

func (r *RequestDynamoRepository) Update(ctx context.Context, req entities.Request) (entities.Request, error) {
	expected := req.Version
	req.Version = expected + 1
	err := r.write(ctx, req, "#version = :expected",
		map[string]string{"#version": "version"},
		map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
		},
	)
	if err != nil {
		return entities.Request{}, err
	}
	return req, nil
}

func (r *RequestDynamoRepository) write(
	ctx context.Context,
	req entities.Request,
	condition string,
	names map[string]string,
	values map[string]types.AttributeValue,
) error {
	av, err := attributevalue.MarshalMap(toRequestItem(req))
	if err != nil {
		return err
	}

	tx := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                 aws.String(r.tableName),
			Item:                      av,
			ConditionExpression:       aws.String(condition),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		},
	}}
	for _, p := range req.Payments {
		if p.Status != entities.AttemptStatusPending {
			continue
		}
		idx, err := attributevalue.MarshalMap(paymentOrderItem{
			GatewayOrderID: p.GatewayOrderID,
			PaymentID:      p.PaymentID,
			RequestID:      req.ID,
		})
		if err != nil {
			return err
		}
		tx = append(tx, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(r.ordersTable),
				Item:                idx,
				ConditionExpression: aws.String("attribute_not_exists(#oid) OR #rid = :rid"),
				ExpressionAttributeNames: map[string]string{
					"#oid": "gateway_order_id",
					"#rid": "request_id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":rid": &types.AttributeValueMemberS{Value: req.ID},
				},
			},
		})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: tx})
	if err != nil {
		return mapTransactionError(err)
	}
	return nil
}

// mapTransactionError turns a cancelled transaction into domain errors:
// a failed check on the request item (index 0) is a lost version race, a
// failed check on an index entry is an order id owned by another request.
func mapTransactionError(err error) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return err
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) != "ConditionalCheckFailed" {
			continue
		}
		if i == 0 {
			return interfaces.ErrConcurrentUpdate
		}
		return fmt.Errorf("%w: gateway order already indexed", entities.ErrDuplicateAttempt)
	}
	return err
}

func (r *RequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.Request, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Request{}, err
	}
	if len(out.Item) == 0 {
		return entities.Request{}, nil
	}

	var it requestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Request{}, err
	}
	return fromRequestItem(it), nil
}

func (r *RequestDynamoRepository) GetByGatewayOrderID(ctx context.Context, orderID string) (entities.Request, error) {
	if orderID == "" {
		return entities.Request{}, nil
	}
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.ordersTable),
		Key: map[string]types.AttributeValue{
			"gateway_order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Request{}, err
	}
	if len(out.Item) == 0 {
		return entities.Request{}, nil
	}

	var idx paymentOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &idx); err != nil {
		return entities.Request{}, err
	}
	return r.GetByID(ctx, idx.RequestID)
}

func (r *RequestDynamoRepository) GetByPaymentID(ctx context.Context, paymentID string) (entities.Request, error) {
	if paymentID == "" {
		return entities.Request{}, nil
	}
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.ordersTable),
		IndexName:              aws.String(paymentOrdersPaymentIDIndex),
		KeyConditionExpression: aws.String("payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: paymentID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Request{}, err
	}
	if len(out.Items) == 0 {
		return entities.Request{}, nil
	}

	var idx paymentOrderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &idx); err != nil {
		return entities.Request{}, err
	}
	return r.GetByID(ctx, idx.RequestID)
}

func (r *RequestDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Request, error) {
	var (
		items []entities.Request
		start map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(requestsUserIDIndex),
			KeyConditionExpression: aws.String("user_id = :uid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid": &types.AttributeValueMemberS{Value: userID},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, err
		}
		page, err := unmarshalRequests(out.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		start = out.LastEvaluatedKey
	}
}

func (r *RequestDynamoRepository) ListAll(ctx context.Context) ([]entities.Request, error) {
	return r.scan(ctx, nil)
}

func (r *RequestDynamoRepository) ListWithPendingAttempts(ctx context.Context, olderThan time.Time) ([]entities.Request, error) {
	candidates, err := r.scan(ctx, &dynamodb.ScanInput{
		FilterExpression: aws.String("#pending > :zero"),
		ExpressionAttributeNames: map[string]string{
			"#pending": "pending_payments",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
		},
	})
	if err != nil {
		return nil, err
	}

	out := candidates[:0]
	for _, c := range candidates {
		for _, p := range c.Payments {
			if p.Status == entities.AttemptStatusPending && p.CreatedAt.Before(olderThan) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *RequestDynamoRepository) scan(ctx context.Context, in *dynamodb.ScanInput) ([]entities.Request, error) {
	if in == nil {
		in = &dynamodb.ScanInput{}
	}
	in.TableName = aws.String(r.tableName)

	var items []entities.Request
	for {
		out, err := r.ddb.Scan(ctx, in)
		if err != nil {
			return nil, err
		}
		page, err := unmarshalRequests(out.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func unmarshalRequests(raw []map[string]types.AttributeValue) ([]entities.Request, error) {
	items := make([]entities.Request, 0, len(raw))
	for _, m := range raw {
		var it requestItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromRequestItem(it))
	}
	return items, nil
}

func toRequestItem(r entities.Request) requestItem {
	it := requestItem{
		ID:                 r.ID,
		Type:               string(r.Type),
		ProjectID:          r.ProjectID,
		ProjectName:        r.ProjectName,
		CustomProject:      r.CustomProject,
		ClientType:         string(r.ClientType),
		UserID:             r.UserID,
		GuestInfo:          r.GuestInfo,
		Status:             string(r.Status),
		AdminNotes:         r.AdminNotes,
		CurrentModule:      r.CurrentModule,
		GithubLink:         r.GithubLink,
		ExpectedCompletion: formatTimePtr(r.ExpectedCompletion),
		EstimatedPrice:     r.EstimatedPrice,
		ActualPrice:        r.ActualPrice,
		PaymentOption:      string(r.PaymentOption),
		TotalAmount:        r.TotalAmount,
		AdvanceAmount:      r.AdvanceAmount,
		RemainingAmount:    r.RemainingAmount,
		PaymentStatus:      string(r.PaymentStatus),
		Payments:           make([]paymentAttemptItem, 0, len(r.Payments)),
		StatusHistory:      make([]statusHistoryItem, 0, len(r.StatusHistory)),
		ApprovalEmailSent:  r.ApprovalEmailSent,
		ApprovedAt:         formatTimePtr(r.ApprovedAt),
		CompletedAt:        formatTimePtr(r.CompletedAt),
		CreatedAt:          formatTime(r.CreatedAt),
		UpdatedAt:          formatTime(r.UpdatedAt),
		Version:            r.Version,
	}
	for _, p := range r.Payments {
		if p.Status == entities.AttemptStatusPending {
			it.PendingPayments++
		}
		it.Payments = append(it.Payments, paymentAttemptItem{
			PaymentID:        p.PaymentID,
			GatewayOrderID:   p.GatewayOrderID,
			Amount:           p.Amount,
			Currency:         p.Currency,
			Kind:             string(p.Kind),
			Status:           string(p.Status),
			GatewayPaymentID: p.GatewayPaymentID,
			GatewaySignature: p.GatewaySignature,
			FailureReason:    p.FailureReason,
			CreatedAt:        formatTime(p.CreatedAt),
			PaidAt:           formatTimePtr(p.PaidAt),
			ClosedAt:         formatTimePtr(p.ClosedAt),
		})
	}
	for _, h := range r.StatusHistory {
		it.StatusHistory = append(it.StatusHistory, statusHistoryItem{
			Status:    string(h.Status),
			Notes:     h.Notes,
			UpdatedBy: h.UpdatedBy,
			UpdatedAt: formatTime(h.UpdatedAt),
		})
	}
	return it
}

func fromRequestItem(it requestItem) entities.Request {
	r := entities.Request{
		ID:                 it.ID,
		Type:               entities.RequestType(it.Type),
		ProjectID:          it.ProjectID,
		ProjectName:        it.ProjectName,
		CustomProject:      it.CustomProject,
		ClientType:         entities.ClientType(it.ClientType),
		UserID:             it.UserID,
		GuestInfo:          it.GuestInfo,
		Status:             entities.RequestStatus(it.Status),
		AdminNotes:         it.AdminNotes,
		CurrentModule:      it.CurrentModule,
		GithubLink:         it.GithubLink,
		ExpectedCompletion: parseTimePtr(it.ExpectedCompletion),
		EstimatedPrice:     it.EstimatedPrice,
		ActualPrice:        it.ActualPrice,
		PaymentOption:      entities.PaymentOption(it.PaymentOption),
		TotalAmount:        it.TotalAmount,
		AdvanceAmount:      it.AdvanceAmount,
		RemainingAmount:    it.RemainingAmount,
		PaymentStatus:      entities.PaymentStatus(it.PaymentStatus),
		ApprovalEmailSent:  it.ApprovalEmailSent,
		ApprovedAt:         parseTimePtr(it.ApprovedAt),
		CompletedAt:        parseTimePtr(it.CompletedAt),
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
		Version:            it.Version,
	}
	for _, p := range it.Payments {
		r.Payments = append(r.Payments, entities.PaymentAttempt{
			PaymentID:        p.PaymentID,
			GatewayOrderID:   p.GatewayOrderID,
			Amount:           p.Amount,
			Currency:         p.Currency,
			Kind:             entities.PaymentKind(p.Kind),
			Status:           entities.AttemptStatus(p.Status),
			GatewayPaymentID: p.GatewayPaymentID,
			GatewaySignature: p.GatewaySignature,
			FailureReason:    p.FailureReason,
			CreatedAt:        parseTime(p.CreatedAt),
			PaidAt:           parseTimePtr(p.PaidAt),
			ClosedAt:         parseTimePtr(p.ClosedAt),
		})
	}
	for _, h := range it.StatusHistory {
		r.StatusHistory = append(r.StatusHistory, entities.StatusHistoryEntry{
			Status:    entities.RequestStatus(h.Status),
			Notes:     h.Notes,
			UpdatedBy: h.UpdatedBy,
			UpdatedAt: parseTime(h.UpdatedAt),
		})
	}
	return r
}
