package repository

import (
	"context"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProjectsTableName = "projects"
	defaultUsersTableName    = "users"
)

type projectItem struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description,omitempty"`
	Category    string `dynamodbav:"category,omitempty"`
	Price       int64  `dynamodbav:"price"`
}

type userItem struct {
	ID       string `dynamodbav:"id"`
	Username string `dynamodbav:"username"`
	Email    string `dynamodbav:"email"`
	Role     string `dynamodbav:"role"`
}

// ProjectDynamoRepository reads the project catalog (PK: id).
type ProjectDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb dynamoAPI, tables Tables) *ProjectDynamoRepository {
	name := tables.Projects
	if name == "" {
		name = defaultProjectsTableName
	}
	return &ProjectDynamoRepository{ddb: ddb, tableName: name}
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	var it projectItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Project{}, err
	}
	return entities.Project{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		Price:       it.Price,
	}, nil
}

// Put upserts a catalog entry. Used to seed local tables.
func (r *ProjectDynamoRepository) Put(ctx context.Context, p entities.Project) error {
	return putItem(ctx, r.ddb, r.tableName, projectItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
	})
}

// UserDynamoRepository reads registered users (PK: id).
type UserDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb dynamoAPI, tables Tables) *UserDynamoRepository {
	name := tables.Users
	if name == "" {
		name = defaultUsersTableName
	}
	return &UserDynamoRepository{ddb: ddb, tableName: name}
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var it userItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.User{}, err
	}
	return entities.User{
		ID:       it.ID,
		Username: it.Username,
		Email:    it.Email,
		Role:     entities.Role(it.Role),
	}, nil
}

func (r *UserDynamoRepository) Put(ctx context.Context, u entities.User) error {
	return putItem(ctx, r.ddb, r.tableName, userItem{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	})
}

func getItem(ctx context.Context, ddb dynamoAPI, table, id string, dst any) (bool, error) {
	if id == "" {
		return false, nil
	}
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, dst); err != nil {
		return false, err
	}
	return true, nil
}

func putItem(ctx context.Context, ddb dynamoAPI, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	return err
}
