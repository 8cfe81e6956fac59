package testutil

// SampleCatalogJSON is a three-posting catalog in the file format accepted by
// catalog.DecodeCatalog.
const SampleCatalogJSON = `{
  "postings": [
    {
      "id": "backend-1",
      "title": "Senior Backend Engineer",
      "company": "Initech",
      "location": "Remote",
      "required_skills": ["Python", "Docker", "Kubernetes", "AWS"],
      "preferred_skills": ["Go", "Terraform"],
      "industry": "Technology",
      "experience_level": "senior",
      "remote": true,
      "salary_min": 150000,
      "salary_max": 190000,
      "posted_date": "2024-05-28"
    },
    {
      "id": "data-1",
      "title": "Data Analyst",
      "company": "Umbrella",
      "location": "Boston, MA",
      "required_skills": ["SQL", "Excel", "Tableau"],
      "preferred_skills": ["Python"],
      "industry": "Finance",
      "experience_level": "junior",
      "remote": false,
      "salary_range": "$70k - $90k",
      "posted_date": "2024-04-01"
    },
    {
      "id": "platform-1",
      "title": "Platform Engineer",
      "company": "Hooli",
      "location": "Austin, TX",
      "required_skills": ["Go", "Kubernetes", "Terraform"],
      "preferred_skills": ["AWS"],
      "industry": "Technology",
      "experience_level": "mid",
      "remote": false,
      "salary_min": 120000,
      "salary_max": 150000,
      "posted_date": "2024-05-15T00:00:00Z"
    }
  ]
}`
