package accounts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/betmaster21/blackjack-backend/internal/server/models"
)

// DynamoAPI is the subset of the DynamoDB client used by this repository.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       emailKey(email),
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if out.Item == nil {
		return nil, common.ErrorNotFound
	}

	account := &models.Account{}
	if err := attributevalue.UnmarshalMap(out.Item, account); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

func (r *DynamoRepository) Create(ctx context.Context, account *models.Account) error {
	item, err := attributevalue.MarshalMap(account)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *DynamoRepository) UpdateMandatoryDetails(ctx context.Context, email string, details models.MandatoryDetails) error {
	return r.update(ctx, email, &dynamodb.UpdateItemInput{
		UpdateExpression: aws.String(
			"SET first_name = :fn, last_name = :ln, dob = :dob, country = :c, mandatory_details_completed = :mdc, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":fn":  stringAttr(details.FirstName),
			":ln":  stringAttr(details.LastName),
			":dob": stringAttr(details.DOB),
			":c":   stringAttr(details.Country),
			":mdc": &types.AttributeValueMemberBOOL{Value: true},
			":ua":  timeAttr(time.Now()),
		},
	})
}

func (r *DynamoRepository) UpdatePassword(ctx context.Context, email, passwordHash string, providers []string) error {
	providerList, err := attributevalue.Marshal(providers)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return r.update(ctx, email, &dynamodb.UpdateItemInput{
		UpdateExpression: aws.String("SET password = :p, auth_providers = :ap, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p":  stringAttr(passwordHash),
			":ap": providerList,
			":ua": timeAttr(time.Now()),
		},
	})
}

func (r *DynamoRepository) SetOTP(ctx context.Context, email string, otp models.OTPState) error {
	return r.update(ctx, email, &dynamodb.UpdateItemInput{
		UpdateExpression: aws.String(
			"SET otp_code = :c, otp_expires_at = :exp, otp_window_start = :ws, otp_request_count = :rc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c":   stringAttr(otp.Code),
			":exp": timeAttr(otp.ExpiresAt),
			":ws":  timeAttr(otp.WindowStart),
			":rc":  &types.AttributeValueMemberN{Value: strconv.Itoa(otp.RequestCount)},
		},
	})
}

func (r *DynamoRepository) ClearOTP(ctx context.Context, email string) error {
	return r.update(ctx, email, &dynamodb.UpdateItemInput{
		UpdateExpression: aws.String("REMOVE otp_code, otp_expires_at"),
	})
}

func (r *DynamoRepository) update(ctx context.Context, email string, in *dynamodb.UpdateItemInput) error {
	in.TableName = aws.String(r.table)
	in.Key = emailKey(email)

	if _, err := r.client.UpdateItem(ctx, in); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func emailKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
}

func stringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// timeAttr encodes timestamps the same way the unixtime dynamodbav tags on
// models.Account do, so Get round-trips cleanly.
func timeAttr(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(t.Unix(), 10)}
}
