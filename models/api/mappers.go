package api

import (
	"fmt"
	"strconv"

	"kbbridge/models"
)

// SnowflakeToInt converts a Discord snowflake id to its numeric form
func SnowflakeToInt(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", id, err)
	}
	return n, nil
}

func DomainProjectToNewProjectResponse(project *models.Project) (NewProjectResponse, error) {
	id, err := SnowflakeToInt(project.ID)
	if err != nil {
		return NewProjectResponse{}, err
	}
	return NewProjectResponse{
		Status:         StatusSuccess,
		ChannelID:      id,
		ChannelMention: "#" + project.Name,
	}, nil
}

func DomainProjectsToAPIProjectSummaries(projects []models.Project) ([]ProjectSummary, error) {
	result := make([]ProjectSummary, 0, len(projects))
	for _, project := range projects {
		id, err := SnowflakeToInt(project.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ProjectSummary{ID: id, Name: project.Name})
	}
	return result, nil
}

func DomainLifecycleCategoriesToSetupResponse(categories *models.LifecycleCategories) (SetupResponse, error) {
	activeID, err := SnowflakeToInt(categories.ActiveCategoryID)
	if err != nil {
		return SetupResponse{}, err
	}
	completedID, err := SnowflakeToInt(categories.CompletedCategoryID)
	if err != nil {
		return SetupResponse{}, err
	}
	return SetupResponse{
		Status:              StatusSuccess,
		ActiveCategoryID:    activeID,
		CompletedCategoryID: completedID,
	}, nil
}
