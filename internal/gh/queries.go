package gh

// Query documents are fixed and versioned per information need. Each one
// declares its own pagination shape: the user feeds page backward
// ("last/before", newest first), the repository feeds and search page
// forward ("first/after"). The repository feeds pin an explicit orderBy so
// the early-stop on updatedAt stays sound.

const issueCommentsQuery = `
query($username: String!, $count: Int!, $before: String) {
  user(login: $username) {
    issueComments(last: $count, before: $before) {
      pageInfo {
        hasPreviousPage
        startCursor
      }
      nodes {
        publishedAt
        url
        issue {
          number
          title
          author { login }
          repository { nameWithOwner }
        }
        pullRequest {
          merged
        }
      }
    }
  }
}`

const prReviewsQuery = `
query($username: String!, $count: Int!, $before: String) {
  user(login: $username) {
    contributionsCollection {
      pullRequestReviewContributions(last: $count, before: $before) {
        pageInfo {
          hasPreviousPage
          startCursor
        }
        nodes {
          occurredAt
          repository { nameWithOwner }
          pullRequest {
            number
            title
            author { login }
          }
          pullRequestReview {
            url
            state
          }
        }
      }
    }
  }
}`

const recentIssuesQuery = `
query($owner: String!, $repo: String!, $since: DateTime!, $pageSize: Int!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    issues(
      first: $pageSize,
      after: $cursor,
      orderBy: {field: UPDATED_AT, direction: DESC},
      filterBy: {since: $since}
    ) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        number
        title
        url
        createdAt
        updatedAt
        author { login }
        timelineItems(last: 50, itemTypes: [LABELED_EVENT, CLOSED_EVENT]) {
          nodes {
            __typename
            ... on LabeledEvent {
              createdAt
              actor { login }
              label { name }
            }
            ... on ClosedEvent {
              createdAt
              actor { login }
              closer {
                __typename
                ... on PullRequest { number }
              }
            }
          }
        }
      }
    }
  }
}`

const recentPRsQuery = `
query($owner: String!, $repo: String!, $pageSize: Int!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    pullRequests(
      first: $pageSize,
      after: $cursor,
      orderBy: {field: UPDATED_AT, direction: DESC},
      states: [OPEN, CLOSED, MERGED]
    ) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        number
        title
        url
        state
        createdAt
        updatedAt
        author { login }
        timelineItems(last: 50, itemTypes: [CLOSED_EVENT, MERGED_EVENT]) {
          nodes {
            __typename
            ... on ClosedEvent {
              createdAt
              actor { login }
            }
            ... on MergedEvent {
              createdAt
              actor { login }
            }
          }
        }
      }
    }
  }
}`

const searchIssuesQuery = `
query($searchQuery: String!, $pageSize: Int!, $cursor: String) {
  search(query: $searchQuery, type: ISSUE, first: $pageSize, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ... on Issue {
        number
        title
        url
        state
        createdAt
        author { login }
        comments(first: 100) {
          nodes {
            author { login }
            createdAt
          }
        }
        timelineItems(first: 100, itemTypes: [LABELED_EVENT, CLOSED_EVENT]) {
          nodes {
            __typename
            ... on LabeledEvent {
              createdAt
              actor { login }
              label { name }
            }
            ... on ClosedEvent {
              createdAt
              actor { login }
              closer {
                __typename
                ... on PullRequest { number }
              }
            }
          }
        }
      }
    }
  }
}`

const searchPRsQuery = `
query($searchQuery: String!, $pageSize: Int!, $cursor: String) {
  search(query: $searchQuery, type: ISSUE, first: $pageSize, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ... on PullRequest {
        number
        title
        url
        state
        createdAt
        author { login }
        comments(first: 100) {
          nodes {
            author { login }
            createdAt
          }
        }
        reviews(first: 100) {
          nodes {
            author { login }
            state
          }
        }
        timelineItems(first: 50, itemTypes: [MERGED_EVENT, CLOSED_EVENT]) {
          nodes {
            __typename
            ... on MergedEvent {
              createdAt
              actor { login }
            }
            ... on ClosedEvent {
              createdAt
              actor { login }
              closer {
                __typename
                ... on PullRequest { number }
              }
            }
          }
        }
      }
    }
  }
}`
